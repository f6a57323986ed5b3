package document

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	_ "embed"
)

//go:embed document.schema.json
var documentSchema string

// Decode validates raw JSON against the document schema and unmarshals it.
// A document that fails here never reaches the patcher; structural errors
// are fatal for the call and surfaced to the caller.
func Decode(raw []byte) (*Document, error) {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("document validation: %w", err)
	}
	if !res.Valid() {
		msgs := ""
		for _, e := range res.Errors() {
			msgs += fmt.Sprintf("%s; ", e.String())
		}
		return nil, fmt.Errorf("invalid document structure: %s", msgs)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
