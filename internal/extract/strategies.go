package extract

import (
	"strings"

	"github.com/opencontratos/contratista/internal/model"
	"github.com/opencontratos/contratista/internal/validate"
)

// comparecientesStrategy reads the party-introduction span: from the
// "parties appear" marker up to the first CONTRATISTA mention. That span names
// both parties, so everything found here still runs through the employer
// exclusion before being proposed.
type comparecientesStrategy struct{}

func (comparecientesStrategy) Name() string { return "comparecientes" }

func (comparecientesStrategy) Apply(src *Source, cur model.Result) model.Result {
	start := partiesMarker.FindStringIndex(src.Block)
	if start == nil {
		return cur
	}
	rest := src.Block[start[1]:]
	end := contratistaMarker.FindStringIndex(rest)
	if end == nil {
		return cur
	}
	span := rest[:end[1]]

	if cur.Representante == "" {
		if m := nameBeforeRole.FindStringSubmatch(span); m != nil && !validate.LooksLikeEmployer(m[1]) {
			cur.Representante = m[1]
		}
	}
	if cur.RazonSocial == "" {
		// The contracting entity is introduced first; the contractor's
		// company suffix is usually the last one in the span.
		for _, m := range companySuffix.FindAllStringSubmatch(span, -1) {
			c := strings.TrimSpace(m[1])
			if validate.LooksLikeEmployer(c) || addressHeaderLike.MatchString(c) {
				continue
			}
			cur.RazonSocial = c
		}
	}
	return cur
}

// labeledEntityStrategy scans for literal "CONTRATISTA:"/"PROVEEDOR:"/
// "ADJUDICATARIO:" lines and takes the trailing text, looking ahead up to two
// lines when the label sits alone on its line.
type labeledEntityStrategy struct{}

func (labeledEntityStrategy) Name() string { return "labeled-entity" }

func (labeledEntityStrategy) Apply(src *Source, cur model.Result) model.Result {
	if cur.RazonSocial != "" {
		return cur
	}
	lines := strings.Split(src.Block, "\n")
	for i, line := range lines {
		m := entityLabelLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		cand := strings.TrimSpace(m[1])
		for j := i + 1; len(cand) < 4 && j < len(lines) && j <= i+2; j++ {
			cand = strings.TrimSpace(lines[j])
		}
		if cand == "" || addressHeaderLike.MatchString(cand) {
			continue
		}
		cur.RazonSocial = cand
		return cur
	}
	return cur
}

// labeledFieldStrategy fills address, email, and phone from labeled matches:
// first within a narrow slice anchored at "EL CONTRATISTA:", then the last
// global match in the block. Later occurrences in these contract templates
// are more often the contractor's own declared data, hence last-match-wins.
type labeledFieldStrategy struct{}

func (labeledFieldStrategy) Name() string { return "labeled-fields" }

const anchorSliceLen = 600

func anchoredSlice(block string) string {
	loc := contratistaAnchor.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	end := loc[1] + anchorSliceLen
	if end > len(block) {
		end = len(block)
	}
	return block[loc[1]:end]
}

func (labeledFieldStrategy) Apply(src *Source, cur model.Result) model.Result {
	slice := anchoredSlice(src.Block)

	fill := func(field string, anchored, global string) {
		if cur.Get(field) != "" {
			return
		}
		if anchored != "" {
			cur.Set(field, anchored)
		} else if global != "" {
			cur.Set(field, global)
		}
	}

	fill(model.FieldDomicilio, firstGroup(addressLabel.FindStringSubmatch(slice)), lastGroup(addressLabel.FindAllStringSubmatch(src.Block, -1)))
	fill(model.FieldMail, firstGroup(emailLabel.FindStringSubmatch(slice)), lastGroup(emailLabel.FindAllStringSubmatch(src.Block, -1)))
	fill(model.FieldTelefono, firstGroup(phoneLabel.FindStringSubmatch(slice)), lastGroup(phoneLabel.FindAllStringSubmatch(src.Block, -1)))
	return cur
}

func firstGroup(m []string) string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func lastGroup(ms [][]string) string {
	if len(ms) == 0 {
		return ""
	}
	return strings.TrimSpace(ms[len(ms)-1][1])
}

// contactSliceStrategy re-runs looser contact sub-patterns against the 600
// characters after "EL CONTRATISTA:", catching unlabeled emails the labeled
// pass missed. Fills only fields still missing.
type contactSliceStrategy struct{}

func (contactSliceStrategy) Name() string { return "contact-slice" }

func (contactSliceStrategy) Apply(src *Source, cur model.Result) model.Result {
	slice := anchoredSlice(src.Block)
	if slice == "" {
		return cur
	}
	if cur.Mail == "" {
		if m := bareEmail.FindStringSubmatch(slice); m != nil {
			cur.Mail = m[1]
		}
	}
	if cur.Telefono == "" {
		if m := phoneLabel.FindStringSubmatch(slice); m != nil {
			cur.Telefono = strings.TrimSpace(m[1])
		}
	}
	if cur.Domicilio == "" {
		if m := addressLabel.FindStringSubmatch(slice); m != nil {
			cur.Domicilio = strings.TrimSpace(m[1])
		}
	}
	return cur
}

// sectionStrategy reads structured sections: "DATOS DEL CONTRATISTA" blocks
// with labeled sub-lines, "PROVEEDOR:" headers, and the domicile clause with
// Provincia/Cantón/Calles sub-fields assembled into one address.
type sectionStrategy struct{}

func (sectionStrategy) Name() string { return "sections" }

const sectionScanLines = 15

func (s sectionStrategy) Apply(src *Source, cur model.Result) model.Result {
	lines := strings.Split(src.Block, "\n")
	for i, line := range lines {
		switch {
		case datosSectionHeader.MatchString(line):
			cur = s.scanSection(lines, i+1, cur)
		case proveedorHeader.MatchString(line):
			if m := proveedorHeader.FindStringSubmatch(line); cur.RazonSocial == "" && strings.TrimSpace(m[1]) != "" {
				cur.RazonSocial = strings.TrimSpace(m[1])
			}
			cur = s.scanSection(lines, i+1, cur)
		}
	}
	if cur.Domicilio == "" {
		cur.Domicilio = assembleDomicile(src.Block)
	}
	return cur
}

func (sectionStrategy) scanSection(lines []string, from int, cur model.Result) model.Result {
	to := from + sectionScanLines
	if to > len(lines) {
		to = len(lines)
	}
	section := strings.Join(lines[from:to], "\n")

	if cur.RazonSocial == "" {
		if m := regexpRazonSocial.FindStringSubmatch(section); m != nil {
			cur.RazonSocial = strings.TrimSpace(m[1])
		}
	}
	if cur.RUC == "" {
		if m := regexpRUCLine.FindStringSubmatch(section); m != nil {
			cur.RUC = m[1]
		}
	}
	if cur.Domicilio == "" {
		if m := addressLabel.FindStringSubmatch(section); m != nil {
			cur.Domicilio = strings.TrimSpace(m[1])
		}
	}
	if cur.Telefono == "" {
		if m := phoneLabel.FindStringSubmatch(section); m != nil {
			cur.Telefono = strings.TrimSpace(m[1])
		}
	}
	if cur.Mail == "" {
		if m := emailLabel.FindStringSubmatch(section); m != nil {
			cur.Mail = m[1]
		}
	}
	return cur
}

// assembleDomicile joins the structured Provincia/Cantón/Calles sub-fields of
// a domicile clause into a single address string. Calles alone is not enough;
// at least the cantón must be present.
func assembleDomicile(block string) string {
	canton := firstGroup(cantonLabel.FindStringSubmatch(block))
	if canton == "" {
		return ""
	}
	var parts []string
	if p := firstGroup(provinciaLabel.FindStringSubmatch(block)); p != "" {
		parts = append(parts, "Provincia "+p)
	}
	parts = append(parts, "Cantón "+canton)
	if c := firstGroup(callesLabel.FindStringSubmatch(block)); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, ", ")
}

// signatureTailStrategy is the last resort for name and company: the
// signature section at the end of the document. It works on the full line
// list, not the isolated block, because signatures often fall outside every
// trigger window.
type signatureTailStrategy struct {
	tailLines int
}

func (signatureTailStrategy) Name() string { return "signature-tail" }

func (s signatureTailStrategy) Apply(src *Source, cur model.Result) model.Result {
	if cur.Representante != "" && cur.RazonSocial != "" {
		return cur
	}
	from := len(src.Lines) - s.tailLines
	if from < 0 {
		from = 0
	}
	tail := strings.Join(src.Lines[from:], "\n")

	if cur.Representante == "" {
		if m := porParteSignature.FindStringSubmatch(tail); m != nil {
			cur.Representante = m[1]
		} else if m := signedBy.FindStringSubmatch(tail); m != nil {
			cur.Representante = m[1]
		} else if m := nameThenRole.FindStringSubmatch(tail); m != nil {
			cur.Representante = m[1]
		}
	}
	if cur.RazonSocial == "" {
		if m := companySuffix.FindStringSubmatch(tail); m != nil && !validate.LooksLikeEmployer(m[1]) {
			cur.RazonSocial = strings.TrimSpace(m[1])
		}
	}
	return cur
}

// representativeOverrideStrategy replaces a missing or employer-looking
// company context with the last "representado por <name>" match whose
// surroundings talk about the contractor, not only the contracting entity.
type representativeOverrideStrategy struct{}

func (representativeOverrideStrategy) Name() string { return "representative-override" }

func (representativeOverrideStrategy) Apply(src *Source, cur model.Result) model.Result {
	if cur.Representante != "" && cur.RazonSocial != "" && !validate.LooksLikeEmployer(cur.RazonSocial) {
		return cur
	}
	matches := representadoPor.FindAllStringSubmatchIndex(src.Block, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		name := src.Block[m[2]:m[3]]
		ctx := contextWindow(src.Block, m[0], m[1], 150)
		if entityContext.MatchString(ctx) && !literalContratista.MatchString(ctx) {
			continue
		}
		if cur.Representante == "" {
			cur.Representante = name
		}
		break
	}
	return cur
}

func contextWindow(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
