package model

// Field names match the column names of the target contract table. The six
// contractor attributes are the only columns the pipeline will ever write.
const (
	FieldRazonSocial   = "razon_social"
	FieldRepresentante = "representante"
	FieldRUC           = "ruc"
	FieldTelefono      = "telefono"
	FieldMail          = "mail"
	FieldDomicilio     = "domicilio"
)

// Fields lists the contractor fields in their canonical order.
var Fields = []string{
	FieldRazonSocial,
	FieldRepresentante,
	FieldRUC,
	FieldTelefono,
	FieldMail,
	FieldDomicilio,
}

// Result maps contractor fields to validated values. An empty string means the
// field was not found in the source text; that is a normal outcome, not an
// error, and such fields are never written to the store.
type Result struct {
	RazonSocial   string `json:"razon_social,omitempty"`
	Representante string `json:"representante,omitempty"`
	RUC           string `json:"ruc,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	Mail          string `json:"mail,omitempty"`
	Domicilio     string `json:"domicilio,omitempty"`
}

// Get returns the value for a field name.
func (r Result) Get(field string) string {
	switch field {
	case FieldRazonSocial:
		return r.RazonSocial
	case FieldRepresentante:
		return r.Representante
	case FieldRUC:
		return r.RUC
	case FieldTelefono:
		return r.Telefono
	case FieldMail:
		return r.Mail
	case FieldDomicilio:
		return r.Domicilio
	}
	return ""
}

// Set assigns the value for a field name. Unknown fields are ignored.
func (r *Result) Set(field, value string) {
	switch field {
	case FieldRazonSocial:
		r.RazonSocial = value
	case FieldRepresentante:
		r.Representante = value
	case FieldRUC:
		r.RUC = value
	case FieldTelefono:
		r.Telefono = value
	case FieldMail:
		r.Mail = value
	case FieldDomicilio:
		r.Domicilio = value
	}
}

// Merge fills empty fields of r from other. A field already set in r is never
// overwritten: first non-empty wins, which makes chunk ordering significant
// and lets the rule-based result take precedence over the LLM result.
func (r Result) Merge(other Result) Result {
	out := r
	for _, f := range Fields {
		if out.Get(f) == "" {
			if v := other.Get(f); v != "" {
				out.Set(f, v)
			}
		}
	}
	return out
}

// Columns returns only the non-empty fields as a column→value map, ready for a
// partial update. Fields the pipeline has no opinion on are omitted entirely.
func (r Result) Columns() map[string]string {
	cols := make(map[string]string, len(Fields))
	for _, f := range Fields {
		if v := r.Get(f); v != "" {
			cols[f] = v
		}
	}
	return cols
}

// Complete reports whether every field is filled.
func (r Result) Complete() bool {
	for _, f := range Fields {
		if r.Get(f) == "" {
			return false
		}
	}
	return true
}

// Empty reports whether no field is filled.
func (r Result) Empty() bool {
	return len(r.Columns()) == 0
}
