package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/opencontratos/contratista/internal/model"
)

// Model output is JSON in theory and prose-wrapped JSON in practice: markdown
// code fences, leading explanations, trailing commentary. ParseResult digs
// the object out, and when even that fails falls back to per-field regex over
// the raw text.

var (
	codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

	// Any known field key marks a brace-delimited object as ours.
	knownKey = regexp.MustCompile(`"(?:razon_social|representante|ruc|telefono|mail|domicilio|correo|email|direccion)"`)

	fieldValue = map[string]*regexp.Regexp{
		model.FieldRazonSocial:   regexp.MustCompile(`"razon_social"\s*:\s*"([^"]*)"`),
		model.FieldRepresentante: regexp.MustCompile(`"representante"\s*:\s*"([^"]*)"`),
		model.FieldRUC:           regexp.MustCompile(`"ruc"\s*:\s*"?([0-9]{10,13})"?`),
		model.FieldTelefono:      regexp.MustCompile(`"telefono"\s*:\s*"([^"]*)"`),
		model.FieldMail:          regexp.MustCompile(`"(?:mail|correo|email)"\s*:\s*"([^"]*)"`),
		model.FieldDomicilio:     regexp.MustCompile(`"(?:domicilio|direccion)"\s*:\s*"([^"]*)"`),
	}
)

// ParseResult extracts a candidate set from raw model output. It never
// returns an error: unparseable output is an empty result, the same as a
// chunk that genuinely held no contractor data.
func ParseResult(raw string) model.Result {
	text := strings.TrimSpace(raw)
	if text == "" {
		return model.Result{}
	}

	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if obj := locateObject(text); obj != "" {
		var fields map[string]any
		if err := json.Unmarshal([]byte(obj), &fields); err == nil {
			return fromFieldMap(fields)
		}
	}

	// Last resort: the JSON was malformed but the key/value pairs are often
	// still textually intact.
	var r model.Result
	for field, re := range fieldValue {
		if m := re.FindStringSubmatch(text); m != nil {
			r.Set(field, cleanValue(m[1]))
		}
	}
	return r
}

// locateObject finds the first balanced brace-delimited object that contains
// a known field key.
func locateObject(text string) string {
scan:
	for start := 0; start < len(text); {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			return ""
		}
		open += start

		depth := 0
		inString := false
		escaped := false
		for i := open; i < len(text); i++ {
			c := text[i]
			switch {
			case escaped:
				escaped = false
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case !inString && c == '{':
				depth++
			case !inString && c == '}':
				depth--
				if depth == 0 {
					obj := text[open : i+1]
					if knownKey.MatchString(obj) {
						return obj
					}
					start = i + 1
					continue scan
				}
			}
		}
		return "" // unbalanced to end of text
	}
	return ""
}

func fromFieldMap(fields map[string]any) model.Result {
	var r model.Result
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := fields[k]; ok {
				if s, ok := v.(string); ok {
					return cleanValue(s)
				}
			}
		}
		return ""
	}
	r.RazonSocial = get("razon_social")
	r.Representante = get("representante")
	r.RUC = get("ruc")
	r.Telefono = get("telefono")
	r.Mail = get("mail", "correo", "email")
	r.Domicilio = get("domicilio", "direccion")
	return r
}

// cleanValue drops the null-ish placeholder strings models emit instead of
// JSON null.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "null", "none", "n/a", "na", "-", "no especificado", "no disponible":
		return ""
	}
	return s
}
