package extract

import "regexp"

// Shared pattern library. Every strategy composes from these rather than
// re-spelling the same OCR-tolerant alternations.
var (
	// Natural-person names: 2-4 capitalized tokens, title case or all caps.
	// Token separator stays on one line; signature blocks stack unrelated
	// words vertically and a name must never absorb them.
	personNamePattern = `((?:[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+|[A-ZÁÉÍÓÚÑ]{2,})(?:[ \t]+(?:[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+|[A-ZÁÉÍÓÚÑ]{2,})){1,3})`

	// Company names ending in a legal suffix.
	companySuffixPattern = `([A-ZÁÉÍÓÚÑ0-9][A-ZÁÉÍÓÚÑa-záéíóúñ0-9&\.\-\s]{2,80}?(?:S\.?\s?A\.?S?\.?|C[IÍ]A\.?\s*LTDA\.?|LTDA\.?|E\.?P\.?|EMPRESA\s+P[ÚU]BLICA))`

	nameBeforeRole = regexp.MustCompile(personNamePattern +
		`\s*,?\s+(?:en\s+(?:su\s+)?calidad\s+de|representante\s+legal|apoderad[oa]|delegad[oa]|gerente\s+general)`)

	companySuffix = regexp.MustCompile(companySuffixPattern)

	partiesMarker     = regexp.MustCompile(`(?i)\b(?:comparecen|comparece|por\s+una\s+parte|intervienen)\b`)
	contratistaMarker = regexp.MustCompile(`\bCONTRATISTA\b`)

	entityLabelLine = regexp.MustCompile(`(?i)^\s*(?:el\s+|la\s+)?(?:contratista|proveedor|adjudicatario)\s*:\s*(.*)$`)

	contratistaAnchor = regexp.MustCompile(`(?i)EL\s+CONTRATISTA\s*:`)

	// The address capture ends at the next labeled field on the same line;
	// one-line contact blocks chain Dirección, Correo and Teléfono together.
	addressEnd   = `(?:\s*\b(?:correo(?:\s+electr[óo]nico)?|e[\-\s]?mail|mail|tel[ée]fonos?|telf?s?|celular|cel|m[óo]vil|r\.?u\.?c|representante|cl[áa]usula)\b|\s*\n|$)`
	addressLabel = regexp.MustCompile(`(?i)\b(?:direcci[óo]n|domicilio)\s*:\s*([^\n]{1,250}?)` + addressEnd)
	emailLabel   = regexp.MustCompile(`(?i)\b(?:correo(?:\s+electr[óo]nico)?|e[\-\s]?mail|mail)\s*:\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)
	phoneLabel   = regexp.MustCompile(`(?i)\b(?:tel[ée]fonos?|telf?s?\.?|celular|cel\.?|m[óo]vil)\s*:?\s*((?:\+?593[\s\-]?)?\d[\d\s\-/,\.]{6,30}\d)`)
	bareEmail    = regexp.MustCompile(`([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)

	datosSectionHeader = regexp.MustCompile(`(?i)^\s*datos\s+del\s+contratista\b`)
	proveedorHeader    = regexp.MustCompile(`(?i)^\s*proveedor\s*:\s*(.*)$`)
	regexpRazonSocial  = regexp.MustCompile(`(?i)\braz[óo]n\s+social\s*:\s*([^\n]{3,200})`)
	regexpRUCLine      = regexp.MustCompile(`(?i)\bRUC\s*(?:n[°ºo]?\.?\s*)?[:#]?\s*(\d{10,13})\b`)

	provinciaLabel = regexp.MustCompile(`(?i)\bprovincia\s*:\s*([^\n,;]{2,60})`)
	cantonLabel    = regexp.MustCompile(`(?i)\bcant[óo]n\s*:\s*([^\n,;]{2,60})`)
	callesLabel    = regexp.MustCompile(`(?i)\bcalles?\s*:\s*([^\n;]{2,150})`)

	signedBy          = regexp.MustCompile(`(?i)firmado\s+electr[óo]nicamente\s+por\s*:?\s*` + personNamePattern)
	nameThenRole      = regexp.MustCompile(personNamePattern + `\s*\n\s*(?:EL\s+)?CONTRATISTA\b`)
	porParteSignature = regexp.MustCompile(`(?i)por\s+(?:la\s+parte\s+|el\s+)?contratista\s*:?\s*\n?\s*` + personNamePattern)

	rucDigits     = regexp.MustCompile(`\b\d{13}\b`)
	nameNearRUC   = regexp.MustCompile(personNamePattern + `\s*,?\s+(?:con|portador[a]?\s+de[l]?|titular\s+de[l]?)\s+(?:el\s+)?RUC`)
	rucThenName   = regexp.MustCompile(`R\.?U\.?C\.?\s*(?:[Nn][°ºo]?\.?\s*)?[:#]?\s*\d{10,13}\s*,?\s*` + personNamePattern)
	companyNearRUC = regexp.MustCompile(companySuffixPattern + `\s*,?\s+con\s+RUC`)

	representadoPor = regexp.MustCompile(`(?i)representad[oa]\s+(?:legalmente\s+)?por\s+(?:el\s+se[ñn]or\s+|la\s+se[ñn]ora\s+)?` + personNamePattern)

	addressHeaderLike = regexp.MustCompile(`(?i)^(?:direcci[óo]n|domicilio|ubicaci[óo]n|provincia|cant[óo]n)\b`)
)

// context keyword sets used by the RUC disambiguation scorer
var (
	contractorContext = regexp.MustCompile(`(?i)\b(?:adjudicatari[oa]|proveedor|oferente|contratad[oa]|comparece)\b`)
	entityContext     = regexp.MustCompile(`(?i)\b(?:gobierno|municipio|municipal|gad|prefectura|ministerio|alcald[íi]a|empresa\s+p[úu]blica|entidad\s+contratante|universidad|secretar[íi]a)\b`)
	literalContratista = regexp.MustCompile(`\bCONTRATISTA\b`)
	literalContratante = regexp.MustCompile(`\bCONTRATANTE\b`)
	literalConsorcio   = regexp.MustCompile(`(?i)\bconsorcio\b`)
)
