package llm

import "fmt"

// systemPrompt frames the task for the chat endpoint; the user message
// carries the instructions and the contract fragment.
const systemPrompt = "Eres un extractor experto de información contractual de documentos públicos del Ecuador. Respondes únicamente con JSON."

// basePrompt is the full extraction instruction, including the negative
// examples that keep the model off the contracting entity's data. The Spanish
// wording is deliberate: the corpus is Spanish and the field names must come
// back verbatim as JSON keys.
const basePrompt = `Eres un extractor experto de información contractual. Tu única tarea es encontrar la información EXACTA del CONTRATISTA en un archivo de contrato del Ecuador.

El archivo puede tener miles de líneas y estructuras diferentes.
Debes leer TODO el texto y buscar con máxima atención las secciones donde aparece
el CONTRATISTA (proveedor u oferente adjudicado).

NUNCA confundir contratista con:
- entidad contratante
- alcaldes
- procuradores
- administradores de contrato
- jefes de compras
- funcionarios públicos

Tu salida SIEMPRE debe venir del contratista.

--------------------------------------------
BUSCA LA INFORMACIÓN SIGUIENDO ESTAS REGLAS:
--------------------------------------------

1. RAZÓN SOCIAL:
   - Debe ser una empresa, consorcio, compañía, o persona natural oferente.
   - Prioriza frases como:
     "la CONTRATISTA", "el CONTRATISTA", "adjudicado a",
     "oferente ganador", "proveedor adjudicado",
     "comparece… (empresa)", "(empresa) con RUC…".
   - No uses la entidad contratante.

2. REPRESENTANTE:
   - Busca nombres justo después de:
     "representado legalmente por",
     "representante legal",
     "gerente general",
     "apoderado",
     "representado por".
   - Si hay varios, el correcto es el que esté más cerca de la empresa contratista.

3. RUC:
   - Número de 13 dígitos asociado al contratista.
   - Si hay varios, el válido es el que esté más cerca de la razón social.

4. TELÉFONO:
   - Números de 7 a 10 dígitos.
   - Puede incluir espacios o guiones.
   - Si hay varios, reporta el principal del contratista.

5. MAIL:
   - Cualquier dirección de correo que pertenezca al contratista.

6. DOMICILIO:
   - Busca expresiones como:
     "domicilio", "dirección", "ubicado en", "calle", "av.",
     "cantón", "provincia", "parroquia".
   - Debe ser la dirección del CONTRATISTA, NO de la entidad.

-------------------------------------------
FORMATO DE RESPUESTA (JSON):
-------------------------------------------

{
  "razon_social": "",
  "representante": "",
  "ruc": "",
  "telefono": "",
  "mail": "",
  "domicilio": ""
}

Si un dato no existe en el contrato, deja el campo como null.
No inventes nada. Usa SOLO lo que está explícito en el texto.`

// BuildChunkPrompt appends one contract fragment to the base instruction.
func BuildChunkPrompt(chunk string, num, total int) string {
	return fmt.Sprintf("%s\n\n---\n\nTEXTO DEL CONTRATO (FRAGMENTO %d/%d):\n\n%s", basePrompt, num, total, chunk)
}
