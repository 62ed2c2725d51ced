package audit

import "fmt"

// AppendEvent represents a ledger mutation audit event (registration,
// transfer, or one of the free-append record types).
type AppendEvent struct {
	Caller       string
	ClientIP     string
	VIN          string
	Operation    string
	Index        int
	Success      bool
	ErrorMessage string
}

func (e AppendEvent) MessageID() string {
	return "append"
}

func (e AppendEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s appended %s record %d for %s", e.Caller, e.Operation, e.Index, e.VIN)
	}
	msg := fmt.Sprintf("%s tried to append %s record for %s", e.Caller, e.Operation, e.VIN)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AppendEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AppendEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AppendEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Caller,
		},
		SDIDSubject: {
			"vin": e.VIN,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
		sd[SDIDSubject]["index"] = fmt.Sprintf("%d", e.Index)
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
