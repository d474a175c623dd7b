package llm

import "testing"

func TestParseResult_PlainJSON(t *testing.T) {
	raw := `{"razon_social": "CONSTRUCTORA ANDES CIA. LTDA.", "representante": "Juan Pérez", "ruc": "1790012345001", "telefono": null, "mail": "gerencia@andes.com", "domicilio": "Av. Amazonas N34-120"}`
	got := ParseResult(raw)
	if got.RazonSocial != "CONSTRUCTORA ANDES CIA. LTDA." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
	if got.RUC != "1790012345001" {
		t.Errorf("ruc = %q", got.RUC)
	}
	if got.Telefono != "" {
		t.Errorf("expected null telefono to stay empty, got %q", got.Telefono)
	}
}

func TestParseResult_CodeFencedWithProse(t *testing.T) {
	raw := "Aquí está la información extraída:\n```json\n{\"razon_social\": \"SERVICIOS ORIENTE S.A.\", \"ruc\": \"0992233445001\"}\n```\nEspero que sea útil."
	got := ParseResult(raw)
	if got.RazonSocial != "SERVICIOS ORIENTE S.A." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
	if got.RUC != "0992233445001" {
		t.Errorf("ruc = %q", got.RUC)
	}
}

func TestParseResult_TrailingProseAfterObject(t *testing.T) {
	raw := `El contratista es: {"razon_social": "FERRETERIA EL CLAVO CIA. LTDA.", "ruc": null} según la cláusula primera.`
	got := ParseResult(raw)
	if got.RazonSocial != "FERRETERIA EL CLAVO CIA. LTDA." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
}

func TestParseResult_SkipsUnrelatedObject(t *testing.T) {
	raw := `{"page": 1} {"razon_social": "ANDES S.A."}`
	got := ParseResult(raw)
	if got.RazonSocial != "ANDES S.A." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
}

func TestParseResult_RegexFallbackOnMalformedJSON(t *testing.T) {
	// Unquoted trailing key makes this invalid JSON; the per-field fallback
	// still recovers the intact pairs.
	raw := `{"razon_social": "ANDES S.A.", "ruc": "1790012345001", "telefono": sin datos}`
	got := ParseResult(raw)
	if got.RazonSocial != "ANDES S.A." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
	if got.RUC != "1790012345001" {
		t.Errorf("ruc = %q", got.RUC)
	}
	if got.Telefono != "" {
		t.Errorf("telefono = %q", got.Telefono)
	}
}

func TestParseResult_FieldAliases(t *testing.T) {
	raw := `{"razon_social": "ANDES S.A.", "correo": "info2@andes.com", "direccion": "Av. Quito 402"}`
	got := ParseResult(raw)
	if got.Mail != "info2@andes.com" {
		t.Errorf("mail = %q", got.Mail)
	}
	if got.Domicilio != "Av. Quito 402" {
		t.Errorf("domicilio = %q", got.Domicilio)
	}
}

func TestParseResult_NullishPlaceholders(t *testing.T) {
	raw := `{"razon_social": "null", "representante": "No especificado", "ruc": "1790012345001"}`
	got := ParseResult(raw)
	if got.RazonSocial != "" || got.Representante != "" {
		t.Errorf("expected placeholders dropped, got %+v", got)
	}
	if got.RUC != "1790012345001" {
		t.Errorf("ruc = %q", got.RUC)
	}
}

func TestParseResult_GarbageInput(t *testing.T) {
	for _, raw := range []string{"", "sin json aquí", "{broken", "[1,2,3]"} {
		if got := ParseResult(raw); !got.Empty() {
			t.Errorf("ParseResult(%q) = %+v, want empty", raw, got)
		}
	}
}
