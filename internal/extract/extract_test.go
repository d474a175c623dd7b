package extract

import (
	"strings"
	"testing"

	"github.com/opencontratos/contratista/internal/model"
)

func testExtractor() *Extractor {
	return New(model.DefaultConfig().Extract)
}

const comparecientesBlock = `CLAUSULA PRIMERA.- COMPARECIENTES.
Comparecen a la celebración del presente contrato, por una parte el GOBIERNO
AUTONOMO DESCENTRALIZADO MUNICIPAL DE QUITO, representado por su Alcalde; y,
por otra parte la CONSTRUCTORA ANDES CIA. LTDA., representada legalmente por
Juan Pérez Andrade, en calidad de representante legal, a quien en adelante se
denominará CONTRATISTA.`

func TestComparecientesStrategy(t *testing.T) {
	src := NewSource(comparecientesBlock, comparecientesBlock)
	got := comparecientesStrategy{}.Apply(src, model.Result{})

	if !strings.Contains(got.RazonSocial, "CONSTRUCTORA ANDES") {
		t.Errorf("razon_social = %q, want the contractor company", got.RazonSocial)
	}
	if got.Representante != "Juan Pérez Andrade" {
		t.Errorf("representante = %q, want %q", got.Representante, "Juan Pérez Andrade")
	}
}

func TestLabeledEntityStrategy_LookAhead(t *testing.T) {
	block := "antecedentes del proceso\nEL CONTRATISTA:\nSERVICIOS PETROLEROS ORIENTE S.A.\nRUC: 1790012345001"
	got := labeledEntityStrategy{}.Apply(NewSource(block, block), model.Result{})
	if got.RazonSocial != "SERVICIOS PETROLEROS ORIENTE S.A." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
}

func TestLabeledEntityStrategy_RejectsAddressHeader(t *testing.T) {
	block := "EL CONTRATISTA:\nDirección: Av. Amazonas N34-120"
	got := labeledEntityStrategy{}.Apply(NewSource(block, block), model.Result{})
	if got.RazonSocial != "" {
		t.Errorf("expected address-looking candidate rejected, got %q", got.RazonSocial)
	}
}

func TestLabeledFieldStrategy_LastGlobalMatchWins(t *testing.T) {
	// The first dirección belongs to the contracting entity; the contractor's
	// own declared address comes later in the template.
	block := "Dirección: Palacio Municipal, Plaza Grande\n" +
		strings.Repeat("clausulas intermedias\n", 10) +
		"Dirección: Av. Amazonas N34-120 y Atahualpa, Quito\n"
	got := labeledFieldStrategy{}.Apply(NewSource(block, block), model.Result{})
	if !strings.Contains(got.Domicilio, "Amazonas") {
		t.Errorf("domicilio = %q, want the last labeled match", got.Domicilio)
	}
}

func TestLabeledFieldStrategy_AnchoredSlicePreferred(t *testing.T) {
	block := "Teléfono: 022999999\n" +
		"EL CONTRATISTA: CONSTRUCTORA ANDES CIA. LTDA.\nTeléfono: 0991234567\n" +
		strings.Repeat("x", 700) +
		"\nTeléfono: 022888888\n"
	got := labeledFieldStrategy{}.Apply(NewSource(block, block), model.Result{})
	if got.Telefono != "0991234567" {
		t.Errorf("telefono = %q, want the anchored-slice match", got.Telefono)
	}
}

func TestContactSliceStrategy_BareEmail(t *testing.T) {
	block := "EL CONTRATISTA: notificaciones a gerencia@andesconstruye.com en Quito"
	got := contactSliceStrategy{}.Apply(NewSource(block, block), model.Result{})
	if got.Mail != "gerencia@andesconstruye.com" {
		t.Errorf("mail = %q", got.Mail)
	}
}

func TestSectionStrategy_DatosDelContratista(t *testing.T) {
	block := `DATOS DEL CONTRATISTA
Razón social: FERRETERIA EL CONSTRUCTOR CIA. LTDA.
RUC: 0992233445001
Dirección: Av. Quito 402 y Padre Solano
Teléfono: 042345678
Correo electrónico: ventas2@elconstructor.ec`
	got := sectionStrategy{}.Apply(NewSource(block, block), model.Result{})

	if got.RazonSocial != "FERRETERIA EL CONSTRUCTOR CIA. LTDA." {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
	if got.RUC != "0992233445001" {
		t.Errorf("ruc = %q", got.RUC)
	}
	if !strings.Contains(got.Domicilio, "Padre Solano") {
		t.Errorf("domicilio = %q", got.Domicilio)
	}
	if got.Telefono != "042345678" {
		t.Errorf("telefono = %q", got.Telefono)
	}
	if got.Mail != "ventas2@elconstructor.ec" {
		t.Errorf("mail = %q", got.Mail)
	}
}

func TestSectionStrategy_AssemblesDomicile(t *testing.T) {
	block := "EL CONTRATISTA declara su domicilio:\nProvincia: Pichincha\nCantón: Quito\nCalles: Av. 6 de Diciembre y Colón"
	got := sectionStrategy{}.Apply(NewSource(block, block), model.Result{})
	want := "Provincia Pichincha, Cantón Quito, Av. 6 de Diciembre y Colón"
	if got.Domicilio != want {
		t.Errorf("domicilio = %q, want %q", got.Domicilio, want)
	}
}

func TestSignatureTailStrategy(t *testing.T) {
	full := strings.Repeat("clausula de relleno\n", 50) +
		"POR LA PARTE CONTRATISTA:\nMaría López Vega\nFirmado electrónicamente"
	src := NewSource("", full)
	got := signatureTailStrategy{tailLines: 200}.Apply(src, model.Result{})
	if got.Representante != "María López Vega" {
		t.Errorf("representante = %q", got.Representante)
	}
}

func TestRUCAnchoredStrategy_ScoresContractorSide(t *testing.T) {
	block := "La ENTIDAD CONTRATANTE, Municipio de Cuenca, con RUC 0160000123001, " +
		"representada por su Alcalde. " + strings.Repeat("relleno ", 60) +
		"El CONTRATISTA, adjudicatario del proceso, con RUC 0992233445001, " +
		"acepta las condiciones."
	got := rucAnchoredStrategy{weights: DefaultWeights()}.Apply(NewSource(block, block), model.Result{})
	if got.RUC != "0992233445001" {
		t.Errorf("ruc = %q, want the contractor-side candidate", got.RUC)
	}
}

func TestRUCAnchoredStrategy_AllNegativeContextsRejected(t *testing.T) {
	block := "La ENTIDAD CONTRATANTE, Municipio de Cuenca, con RUC 0160000123001."
	got := rucAnchoredStrategy{weights: DefaultWeights()}.Apply(NewSource(block, block), model.Result{})
	if got.RUC != "" {
		t.Errorf("expected no RUC from entity-only context, got %q", got.RUC)
	}
}

func TestRepresentativeOverrideStrategy(t *testing.T) {
	block := "El CONTRATISTA, representado legalmente por Pedro Vásquez Mora, acepta el contrato."
	got := representativeOverrideStrategy{}.Apply(NewSource(block, block), model.Result{})
	if got.Representante != "Pedro Vásquez Mora" {
		t.Errorf("representante = %q", got.Representante)
	}
}

func TestExtractor_NeedsReplace(t *testing.T) {
	e := testExtractor()
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Para todos los efectos de este contrato", true},
		{strings.Repeat("x", 181), true},
		{"Av. Amazonas N34-120", false},
	}
	for _, tt := range tests {
		if got := e.needsReplace(tt.in); got != tt.want {
			t.Errorf("needsReplace(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractor_Run_EndToEnd(t *testing.T) {
	block := comparecientesBlock + "\n" +
		"El CONTRATISTA, con RUC 0992233445001, señala para notificaciones:\n" +
		"Dirección: Av. Amazonas N34-120 y Atahualpa, Quito\n" +
		"Teléfono: 0991234567\n" +
		"Correo electrónico: gerencia3@andesconstruye.com\n"
	got := testExtractor().Run(NewSource(block, block))

	if !strings.Contains(got.RazonSocial, "CONSTRUCTORA ANDES") {
		t.Errorf("razon_social = %q", got.RazonSocial)
	}
	if got.Representante != "Juan Pérez Andrade" {
		t.Errorf("representante = %q", got.Representante)
	}
	if got.RUC != "0992233445001" {
		t.Errorf("ruc = %q", got.RUC)
	}
	if got.Telefono != "0991234567" {
		t.Errorf("telefono = %q", got.Telefono)
	}
	if got.Mail != "gerencia3@andesconstruye.com" {
		t.Errorf("mail = %q", got.Mail)
	}
	if !strings.Contains(got.Domicilio, "Amazonas") {
		t.Errorf("domicilio = %q", got.Domicilio)
	}
}

func TestExtractor_Run_OneLineContactBlock(t *testing.T) {
	// All three labels chained on a single line: the address must stop where
	// the next label starts.
	block := "EL CONTRATISTA: Dirección: Av. Amazonas y Naciones Unidas, Quito " +
		"Correo electrónico: proveedor@empresa.com Teléfono: 0991234567"
	got := testExtractor().Run(NewSource(block, block))

	if got.Domicilio != "Av. Amazonas y Naciones Unidas, Quito" {
		t.Errorf("domicilio = %q, want the address alone", got.Domicilio)
	}
	if got.Mail != "proveedor@empresa.com" {
		t.Errorf("mail = %q", got.Mail)
	}
	if got.Telefono != "0991234567" {
		t.Errorf("telefono = %q", got.Telefono)
	}
}

func TestExtractor_Run_ReplacesBoilerplateCandidate(t *testing.T) {
	// An early strategy lands on boilerplate legal phrasing; a later strategy
	// holding a clean candidate must be allowed to overwrite it.
	block := "CONTRATISTA: Para todos los efectos legales la empresa senalada\n" +
		"PROVEEDOR: CONSTRUCTORA ANDES CIA. LTDA."
	got := testExtractor().Run(NewSource(block, block))

	if got.RazonSocial != "CONSTRUCTORA ANDES CIA. LTDA." {
		t.Errorf("razon_social = %q, want the clean later candidate", got.RazonSocial)
	}
}

func TestExtractor_Run_EmptyInput(t *testing.T) {
	got := testExtractor().Run(NewSource("", ""))
	if !got.Empty() {
		t.Errorf("expected empty result, got %+v", got)
	}
}
