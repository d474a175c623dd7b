// Package validate applies per-field cleanliness rules to candidate values.
// Every rule returns the normalized value and an ok flag; rejection means
// absence, never an error. The rules are applied uniformly no matter which
// extractor produced the candidate.
package validate

import (
	"regexp"
	"strings"

	"github.com/opencontratos/contratista/internal/model"
)

var (
	whitespace = regexp.MustCompile(`\s+`)

	// Public-sector bodies; any of these in a name means the value describes
	// the contracting entity, not the contractor.
	employerPattern = regexp.MustCompile(`(?i)(GOBIERNO|MUNICIPAL|GAD|EMPRESA\s+P[ÚU]BLICA|UNIVERSIDAD|MUNICIPIO|ALCALD[IÍ]A|ALCALDE|PREFECTURA|CONSEJO|MINISTERIO|DISTRITAL|SECRETAR[IÍ]A|SENAE|DIRECCI[ÓO]N\s+(?:DE|NACIONAL|PROVINCIAL)|HOSPITAL|ESCUELA\s+FISCAL|COLEGIO\s+FISCAL)`)

	honorificPrefix = regexp.MustCompile(`(?i)^(Ing\.?|Arq\.?|Abg\.?|Ab\.?|Dr\.?|Dra\.?|Sr\.?|Sra\.?|Srta\.?|Lic\.?|Lcd[aou]\.?|Econ\.?|Eco\.?|Msc\.?|Mgs?\.?|MBA\.?|PhD\.?|Tlg[oa]\.?)\s+`)

	companyKeywords = regexp.MustCompile(`(?i)(C[IÍ]A\.?|L\.?T\.?D\.?A\.?|S\.\s?A\.|S\.A\.S\.?|\bEP\b|E\.P\.|CONSORCIO|COOPERATIVA|COMPAÑ[ÍI]A|ASOCIACI[ÓO]N|CONSTRUCTORA|SERVICIOS|COMERCIAL|INDUSTRIAL|IMPORTADORA|DISTRIBUIDORA|ESTACI[ÓO]N\s+DE\s+SERVICIO|GASOLINERA|FERRETER[ÍI]A|CORPORACI[ÓO]N|FUNDACI[ÓO]N)`)

	companyBadStart = regexp.MustCompile(`(?i)^(\d|Comparecen|Partes|quienes|ser[áa]\b|Avenida|Av\.|Calle|Sector|Provincia|Cant[óo]n|C[óo]digo|Cl[áa]usula)`)

	companyLeadFillers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^y\s+por\s+(?:la\s+)?otra\s+parte[\s,]+`),
		regexp.MustCompile(`(?i)^por\s+(?:la\s+)?otra\s+parte[\s,]+`),
		regexp.MustCompile(`(?i)^comparece[\s,]+`),
		regexp.MustCompile(`(?i)^la\s+empresa\s+`),
		regexp.MustCompile(`(?i)^la\s+compa[ñn][íi]a\s+`),
		regexp.MustCompile(`(?i)^(?:el|la)\s+oferente\s+`),
		regexp.MustCompile(`(?i)^el\s+se[ñn]or\s+`),
		regexp.MustCompile(`(?i)^la\s+se[ñn]ora\s+`),
		regexp.MustCompile(`(?i)^en\s+calidad\s+de\s+representante\s+legal\s+de\s+`),
		regexp.MustCompile(`(?i)^representante\s+legal\s+de\s+`),
		regexp.MustCompile(`(?i)^representad[oa]\s+(?:legalmente\s+)?por\s+`),
		regexp.MustCompile(`(?i)^(?:el|la|los|las|a)\s+`),
	}

	titleKeywords = regexp.MustCompile(`(?i)(Coordinador|Director|Administrador|Gerente\s+General\s+de|Jefe|Secretari[oa]|Ministr[oa]|Alcalde(?:sa)?|Prefect[oa]|Gobernador)`)

	personCompanyWords = regexp.MustCompile(`(?i)(LTDA|S\.A\.|CONSORCIO|C[IÍ]A|\bEP\b|COMPAÑ[ÍI]A|GASOLINERA|AVENIDA|CALLE|RUC)`)
	personToken        = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñA-ZÁÉÍÓÚÑ'\-]*$`)

	upperAlphaToken = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]*$`)

	nonDigits   = regexp.MustCompile(`\D+`)
	mobileShape = regexp.MustCompile(`^09\d{8}$`)
	landShape   = regexp.MustCompile(`^0[2-7]\d{7}$`)
	phoneExt    = regexp.MustCompile(`(?i)(?:ext\.?|ex\.?|x)\s*\d{1,5}$`)
	phonePrefix = regexp.MustCompile(`^\(?\+?593\)?[\s\-]*`)

	emailShape = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

	// Domains owned by the Ecuadorian state; such addresses belong to the
	// contracting entity.
	stateDomainPattern = regexp.MustCompile(`@(?:[a-z0-9.\-]*\.)?(?:gob\.ec|edu\.ec)$|@(?:municipio|gadm?|prefectura|ministerio)[a-z0-9.\-]*\.`)

	genericLocalPart = regexp.MustCompile(`^(?:contacto|info|admin|administracion|noreply|no\-reply|test|ejemplo|example|correo|ventas)@`)

	addressBoilerplate   = regexp.MustCompile(`(?i)para\s+todos\s+los\s+efectos`)
	institutionalAddress = regexp.MustCompile(`(?i)(\bmunicipio\b|\bgad\b|\bprefectura\b|\bministerio\b|coordinaci[óo]n\s+zonal|empresa\s+p[úu]blica|direcci[óo]n\s+distrital|edificio\s+municipal)`)
)

// LooksLikeEmployer reports whether the text names a public-sector body
// rather than a private contractor.
func LooksLikeEmployer(s string) bool {
	return s != "" && employerPattern.MatchString(s)
}

// StripCompanyFillers removes leading articles and connector phrases from a
// company-name candidate and flattens internal whitespace.
func StripCompanyFillers(raw string) string {
	s := whitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	for changed := true; changed; {
		changed = false
		for _, re := range companyLeadFillers {
			if loc := re.FindStringIndex(s); loc != nil {
				s = strings.TrimSpace(s[loc[1]:])
				changed = true
			}
		}
	}
	// Trailing periods stay: legal suffixes end in them (CIA. LTDA., S.A.).
	return strings.TrimRight(strings.TrimLeft(s, " ,.;:"), " ,;:")
}

// CompanyName cleans and validates a razón social candidate.
func CompanyName(raw string) (string, bool) {
	// A leading comma means the capture started mid-enumeration and the
	// actual name sits before the cut; cleaning cannot recover it.
	if strings.HasPrefix(strings.TrimLeft(raw, " \t"), ",") {
		return "", false
	}
	s := StripCompanyFillers(raw)
	if len(s) < 3 || len(s) > 200 {
		return "", false
	}
	if companyBadStart.MatchString(s) || LooksLikeEmployer(s) {
		return "", false
	}
	if strings.Contains(s, ";") {
		return "", false
	}
	words := strings.Fields(s)
	if len(words) > 8 {
		return "", false
	}
	if !companyKeywords.MatchString(s) {
		// Without a company keyword the bar is higher: reject single tokens
		// and short runs of title-cased alphabetic tokens, which almost
		// always name a person rather than a firm.
		if len(words) < 2 {
			return "", false
		}
		if len(words) <= 3 && allPersonLike(words) {
			return "", false
		}
	}
	return s, true
}

func allPersonLike(words []string) bool {
	for _, w := range words {
		if !upperAlphaToken.MatchString(w) {
			return false
		}
	}
	return true
}

// RepresentativeName cleans and validates a natural-person name candidate.
// Honorifics are stripped, 2-4 capitalized tokens required.
func RepresentativeName(raw string) (string, bool) {
	s := whitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	for honorificPrefix.MatchString(s) {
		s = strings.TrimSpace(honorificPrefix.ReplaceAllString(s, ""))
	}
	s = strings.Trim(s, " ,.;:")
	if len(s) < 6 || len(s) > 120 {
		return "", false
	}
	if strings.ContainsAny(s, "0123456789@") {
		return "", false
	}
	if personCompanyWords.MatchString(s) || titleKeywords.MatchString(s) || LooksLikeEmployer(s) {
		return "", false
	}
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 {
		return "", false
	}
	for _, w := range words {
		if !personToken.MatchString(w) {
			return "", false
		}
	}
	return s, true
}

// TaxID keeps only digits and accepts 10-13 digit sequences. A value made of
// one repeated digit is a placeholder, not an identifier.
func TaxID(raw string) (string, bool) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) < 10 || len(digits) > 13 {
		return "", false
	}
	if repeatedDigit(digits) {
		return "", false
	}
	return digits, true
}

func repeatedDigit(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// Phone normalizes a phone candidate. Multi-value fields are split on "/" and
// ",", extensions dropped, a leading +593 folded into the national 0 prefix.
// Only the two national shapes pass; a mobile number wins over a landline when
// both are present.
func Phone(raw string) (string, bool) {
	var mobile, landline string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == ',' || r == ';' }) {
		part = strings.TrimSpace(phoneExt.ReplaceAllString(strings.TrimSpace(part), ""))
		part = phonePrefix.ReplaceAllString(part, "0")
		digits := nonDigits.ReplaceAllString(part, "")
		if repeatedDigit(digits) {
			continue
		}
		switch {
		case mobileShape.MatchString(digits):
			if mobile == "" {
				mobile = digits
			}
		case landShape.MatchString(digits):
			if landline == "" {
				landline = digits
			}
		}
	}
	if mobile != "" {
		return mobile, true
	}
	if landline != "" {
		return landline, true
	}
	return "", false
}

// Email lowercases, validates syntax, and rejects state-owned domains and
// generic placeholder local parts; those never identify the contractor.
func Email(raw string) (string, bool) {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(raw), ".,;:"))
	if !emailShape.MatchString(s) {
		return "", false
	}
	if stateDomainPattern.MatchString(s) {
		return "", false
	}
	if genericLocalPart.MatchString(s) {
		return "", false
	}
	return s, true
}

// Address collapses whitespace and rejects boilerplate legal phrasing and
// institutional addresses.
func Address(raw string) (string, bool) {
	s := whitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	s = strings.Trim(s, " ,.;")
	if len(s) < 1 || len(s) > 250 {
		return "", false
	}
	if addressBoilerplate.MatchString(s) || institutionalAddress.MatchString(s) {
		return "", false
	}
	return s, true
}

// Field dispatches a raw candidate to the rule for the named field.
func Field(field, raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	switch field {
	case model.FieldRazonSocial:
		return CompanyName(raw)
	case model.FieldRepresentante:
		return RepresentativeName(raw)
	case model.FieldRUC:
		return TaxID(raw)
	case model.FieldTelefono:
		return Phone(raw)
	case model.FieldMail:
		return Email(raw)
	case model.FieldDomicilio:
		return Address(raw)
	}
	return "", false
}

// Result validates every field of a raw result, downgrading rejected
// candidates to absence.
func Result(raw model.Result) model.Result {
	var out model.Result
	for _, f := range model.Fields {
		if v, ok := Field(f, raw.Get(f)); ok {
			out.Set(f, v)
		}
	}
	return out
}
