package audit

import "fmt"

// GrantEvent represents a role grant audit event
type GrantEvent struct {
	Caller       string
	ClientIP     string
	Grantee      string
	Role         string
	Success      bool
	ErrorMessage string
}

func (e GrantEvent) MessageID() string {
	return "grant"
}

func (e GrantEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s granted role %s to %s", e.Caller, e.Role, e.Grantee)
	}
	msg := fmt.Sprintf("%s tried to grant role %s to %s", e.Caller, e.Role, e.Grantee)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e GrantEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e GrantEvent) Facility() int {
	return FacilityAuth
}

func (e GrantEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Caller,
		},
		SDIDSubject: {
			"role":    e.Role,
			"grantee": e.Grantee,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "grant",
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
