package domain

import (
	"fmt"
	"strings"
)

// Project is one row of the tracking sheet. JSON keys match the sheet
// headers so API payloads and exported files share one vocabulary.
type Project struct {
	No            int    `json:"No"`
	BRDNo         string `json:"BRD No"`
	Name          string `json:"Project/Fitur"`
	LinkBRD       string `json:"Link BRD"`
	PIC           string `json:"PIC"`
	ContactPerson string `json:"Contact Person"`
	Status        Status `json:"Status"`
	Priority      string `json:"Priority"`
	SubmitDate    string `json:"Tanggal Submit"`
	CompletedDate string `json:"Tanggal Completed"`
	Notes         string `json:"Catatan"`
	UID           string `json:"uid"`
}

// ValidateRequired checks the two fields a new record cannot be created
// without.
func (p *Project) ValidateRequired() error {
	if strings.TrimSpace(p.BRDNo) == "" || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("BRD No and Project/Fitur required")
	}
	return nil
}

// Normalize re-applies the status and priority vocabularies in place.
func (p *Project) Normalize() {
	p.Status = NormalizeStatus(string(p.Status))
	p.Priority = NormalizePriority(p.Priority)
	p.UID = strings.TrimSpace(p.UID)
}

// DisplayName returns the project name, falling back to the BRD number.
func (p *Project) DisplayName() string {
	return CoalesceStr(p.Name, p.BRDNo)
}

// Clone returns a shallow copy; every field is a value type.
func (p *Project) Clone() *Project {
	c := *p
	return &c
}

// Renumber sets each record's sequence number to its 1-based position.
func Renumber(records []*Project) {
	for i, p := range records {
		p.No = i + 1
	}
}

// IndexByUID returns the position of the record with the given uid, or -1.
func IndexByUID(records []*Project, uid string) int {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return -1
	}
	for i, p := range records {
		if p.UID == uid {
			return i
		}
	}
	return -1
}
