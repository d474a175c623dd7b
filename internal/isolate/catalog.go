package isolate

import "regexp"

// Trigger is one declarative catalog entry: a pattern that marks text as
// plausibly describing the contractor, plus how many characters of context to
// keep before and after each match. The matching engine is a generic
// interpreter over this table; extending coverage means adding rows, not code.
type Trigger struct {
	Pattern *regexp.Regexp
	Before  int
	After   int
}

func trig(expr string, before, after int) Trigger {
	return Trigger{Pattern: regexp.MustCompile(`(?i)` + expr), Before: before, After: after}
}

// DefaultCatalog is the trigger library tuned against the Ecuadorian
// public-contract corpus. Order is significant only for documentation; spans
// from all rows are merged by position.
func DefaultCatalog() []Trigger {
	return []Trigger{
		// Party-introduction phrases.
		trig(`\bcomparecen\b`, 500, 1500),
		trig(`\bpor\s+otra\s+parte\b`, 500, 1500),
		trig(`\bcontratista\b`, 500, 1500),
		trig(`\badjudicatario\b`, 500, 1500),
		trig(`\bproveedor\b`, 500, 1500),
		trig(`\bla\s+empresa\b`, 500, 1500),
		trig(`\bla\s+compa[ñn][íi]a\b`, 500, 1500),
		trig(`\bla\s+sociedad\b`, 500, 1500),
		trig(`\bel\s+proveedor\b`, 500, 1500),
		trig(`\ba\s+quien\s+en\s+adelante\s+se\s+denominar[áa]\s+contratista\b`, 500, 1500),
		trig(`\bcomparece\b.*\brepresentado\s+por\b`, 500, 1500),
		trig(`\bel\s+oferente\s+ganador\b`, 500, 1500),
		trig(`\bla\s+persona\s+natural\b`, 500, 1500),
		trig(`\bsocio\s+adjudicado\b`, 500, 1500),
		trig(`\bconsorcio\b`, 500, 1500),
		trig(`\bcooperativa\b`, 500, 1500),
		trig(`\bel\s+contratista\s*:`, 500, 1500),
		trig(`\bsr\.\s+[a-záéíóúñ]+`, 300, 1000),
		trig(`\bsra\.\s+[a-záéíóúñ]+`, 300, 1000),

		// RUC labels with spelling/spacing variants.
		trig(`\bruc\s*[:#]?\s*\d{10,13}\b`, 300, 1200),
		trig(`\br\.u\.c\.\s*[:#]?\s*\d{10,13}\b`, 300, 1200),
		trig(`\bruc\s*n[°ºo]?\s*[:#]?\s*\d{10,13}\b`, 300, 1200),
		trig(`\bcon\s+ruc\s*[:#]?\s*\d{10,13}\b`, 300, 1200),

		// Address and location indicators.
		trig(`\b(?:con\s+)?domicilio\s+en\b`, 300, 1200),
		trig(`\b(?:con\s+)?domicilio\s+fiscal\b`, 300, 1200),
		trig(`\bubicado\s+en\b`, 300, 1200),
		trig(`\bdirecci[óo]n\s*:\s*`, 300, 1200),
		trig(`\bdirecci[óo]n\s+fiscal\s*:\s*`, 300, 1200),
		trig(`\bse\s+encuentra\s+en\b`, 300, 1200),
		trig(`\blocalizado\s+en\b`, 300, 1200),
		trig(`\breside\s+en\b`, 300, 1200),
		trig(`\bsede\s+en\b`, 300, 1200),
		trig(`\boficina\s+en\b`, 300, 1200),
		trig(`\bav\.\s+[a-z0-9]`, 200, 800),
		trig(`\bavenida\s+[a-z0-9]`, 200, 800),
		trig(`\bcalle\s+[a-z0-9]`, 200, 800),
		trig(`\bsector\s+[a-z0-9]`, 200, 800),
		trig(`\bparroquia\s+[a-z0-9]`, 200, 800),
		trig(`\bbarrio\s+[a-z0-9]`, 200, 800),
		trig(`\bconjunto\s+[a-z0-9]`, 200, 800),
		trig(`\bentre\s+calles\b`, 200, 800),
		trig(`\bkm\s+\d+`, 200, 800),
		trig(`\bv[íi]a\s+[a-z0-9]`, 200, 800),

		// Contact labels.
		trig(`\b(?:correo|mail|e[-]?mail|e\s+mail)\s*(?:electr[óo]nico)?\s*:\s*[a-z0-9._%+-]+@`, 200, 800),
		trig(`\b(?:tel[ée]fono|tel\.?|telf\.?)\s*:\s*`, 200, 800),
		trig(`\b(?:tel[ée]fonos?|tels?\.?)\s*:\s*`, 200, 800),
		trig(`\b(?:celular|cel\.?|m[óo]vil|m[óo]bil)\s*:\s*`, 200, 800),
		trig(`\bcontacto\s*:\s*`, 200, 800),
		trig(`\bcomunicaci[óo]n\s*:\s*`, 200, 800),

		// Section headers that usually carry contractor data.
		trig(`\bcl[áa]usula\s+(?:d[ée]cima\s+)?(?:octava|novena|d[ée]cima)\s*[\.\-]\s*domicilio\b`, 400, 1500),
		trig(`\bcl[áa]usula\s+(?:d[ée]cima\s+)?(?:octava|novena|d[ée]cima)\s*[\.\-]\s*comunicaciones\b`, 400, 1500),
		trig(`\bcl[áa]usula\s+(?:d[ée]cima\s+)?(?:octava|novena|d[ée]cima)\s*[\.\-]\s*contacto\b`, 400, 1500),
		trig(`\bdatos\s+del\s+contratista\b`, 400, 1500),
		trig(`\binformaci[óo]n\s+del\s+contratista\b`, 400, 1500),
	}
}
