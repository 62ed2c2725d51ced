package audit

import "fmt"

// FetchEvent represents a history read audit event
type FetchEvent struct {
	ClientIP     string
	VIN          string
	Index        string
	Success      bool
	ErrorMessage string
}

func (e FetchEvent) MessageID() string {
	return "fetch"
}

func (e FetchEvent) Message() string {
	subject := e.VIN
	if e.Index != "" {
		subject = fmt.Sprintf("record %s of %s", e.Index, e.VIN)
	}
	if e.Success {
		return fmt.Sprintf("fetched %s", subject)
	}
	msg := fmt.Sprintf("failed to fetch %s", subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e FetchEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e FetchEvent) Facility() int {
	return FacilityAuthPriv
}

func (e FetchEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"vin": e.VIN,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "fetch",
		},
	}
	if e.Index != "" {
		sd[SDIDSubject]["index"] = e.Index
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
