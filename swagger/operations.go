package swagger

import (
	"errors"
	"fmt"
	"log"

	"github.com/pb33f/libopenapi"
	v2high "github.com/pb33f/libopenapi/datamodel/high/v2"
)

// OperationRef identifies one operation of a document.
type OperationRef struct {
	Path        string
	Method      string
	OperationID string
	QueryParams int
}

func (r OperationRef) String() string {
	id := ""
	if r.OperationID != "" {
		id = " (" + r.OperationID + ")"
	}
	return fmt.Sprintf("%-7s %s%s %d query params", r.Method, r.Path, id, r.QueryParams)
}

// ListOperations builds a Swagger v2 model and returns its operations in
// document order.
func ListOperations(data []byte) ([]OperationRef, error) {
	document, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("Unable to create document: %w", err)
	}

	docModel, errs := document.BuildV2Model()
	if docModel == nil {
		return nil, fmt.Errorf("Unable to build Swagger v2 model: %w", errors.Join(errs...))
	}
	for _, buildErr := range errs {
		log.Printf("Swagger model warning: %v", buildErr)
	}

	out := make([]OperationRef, 0)

	if docModel.Model.Paths == nil {
		return out, nil
	}

	for pathPair := docModel.Model.Paths.PathItems.First(); pathPair != nil; pathPair = pathPair.Next() {
		path := pathPair.Key()
		item := pathPair.Value()

		methods := []struct {
			name string
			op   *v2high.Operation
		}{
			{"GET", item.Get},
			{"PUT", item.Put},
			{"POST", item.Post},
			{"DELETE", item.Delete},
			{"OPTIONS", item.Options},
			{"HEAD", item.Head},
			{"PATCH", item.Patch},
		}

		for _, m := range methods {
			if m.op == nil {
				continue
			}

			count := 0
			for _, p := range m.op.Parameters {
				if p != nil && p.In == string(InQuery) {
					count++
				}
			}

			out = append(out, OperationRef{
				Path:        path,
				Method:      m.name,
				OperationID: m.op.OperationId,
				QueryParams: count,
			})
		}
	}

	return out, nil
}
