package pipeline

import "testing"

func TestCodeFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"PROC-2024-001.txt", "PROC-2024-001"},
		{"contrato_SIE-GADMCE-012-2024.txt", "CONTRATO_SIE-GADMCE-012-2024"},
		{"MCO2024123.txt", "MCO2024123"},
		{"abc.txt", "ABC"}, // nothing matches, stem fallback
	}
	for _, tt := range tests {
		if got := CodeFromFilename(tt.filename); got != tt.want {
			t.Errorf("CodeFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestCodeFromText(t *testing.T) {
	text := "CONTRATO DE OBRA\nCódigo del proceso: MCO-GADM-2024-17\nCLAUSULA PRIMERA"
	if got := CodeFromText(text, "FALLBACK1"); got != "MCO-GADM-2024-17" {
		t.Errorf("CodeFromText = %q", got)
	}
	if got := CodeFromText("sin codigo aqui", "fallback1"); got != "FALLBACK1" {
		t.Errorf("CodeFromText fallback = %q", got)
	}
}
