package store

import (
	"fmt"

	"github.com/vinledger/vinledger/pkg/model"
)

// RoleForRecordType returns the static role required to append a record
// of the given type. Registration and Transfer are gated elsewhere
// (admin role and current ownership respectively), so only the three
// free-append types resolve here.
func RoleForRecordType(t model.RecordType) (model.Role, error) {
	switch t {
	case model.Service, model.Odometer:
		return model.RoleService, nil
	case model.Accident:
		return model.RoleInsurer, nil
	}
	return "", fmt.Errorf("record type %s is not appended via AppendRecord", t)
}
