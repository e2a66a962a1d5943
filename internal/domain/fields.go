package domain

import (
	"strconv"
	"strings"
)

// Field is a column header of the tracking sheet.
type Field string

const (
	FieldNo            Field = "No"
	FieldBRDNo         Field = "BRD No"
	FieldName          Field = "Project/Fitur"
	FieldLinkBRD       Field = "Link BRD"
	FieldPIC           Field = "PIC"
	FieldContactPerson Field = "Contact Person"
	FieldStatus        Field = "Status"
	FieldPriority      Field = "Priority"
	FieldSubmitDate    Field = "Tanggal Submit"
	FieldCompletedDate Field = "Tanggal Completed"
	FieldNotes         Field = "Catatan"
	FieldUID           Field = "uid"
)

// Columns are the eleven canonical fields in sheet order.
var Columns = []Field{
	FieldNo, FieldBRDNo, FieldName, FieldLinkBRD, FieldPIC, FieldContactPerson,
	FieldStatus, FieldPriority, FieldSubmitDate, FieldCompletedDate, FieldNotes,
}

// SheetColumns is the persisted column layout: the canonical fields followed
// by the uid column.
var SheetColumns = append(append([]Field{}, Columns...), FieldUID)

// snakeAliases are the extra payload keys accepted for each field.
var snakeAliases = map[Field][]string{
	FieldBRDNo:         {"brd_no", "brd"},
	FieldName:          {"project", "name", "project_fitur"},
	FieldLinkBRD:       {"link_brd", "link"},
	FieldPIC:           {"pic"},
	FieldContactPerson: {"contact_person"},
	FieldStatus:        {"status"},
	FieldPriority:      {"priority"},
	FieldSubmitDate:    {"submit_date", "tanggal_submit"},
	FieldCompletedDate: {"completed_date", "tanggal_completed"},
	FieldNotes:         {"notes", "catatan"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]Field {
	idx := make(map[string]Field)
	for _, f := range SheetColumns {
		h := string(f)
		idx[h] = f
		idx[strings.NewReplacer(" ", "", "/", "").Replace(h)] = f
		idx[strings.ToLower(h)] = f
		for _, a := range snakeAliases[f] {
			idx[a] = f
		}
	}
	return idx
}

// LookupField resolves a payload key (header, compact header, lower-case
// header or snake-case alias) to its field.
func LookupField(key string) (Field, bool) {
	f, ok := aliasIndex[strings.TrimSpace(key)]
	return f, ok
}

// HeaderKey is the comparison form used to match uploaded sheet headers:
// lower-case with spaces and underscores removed.
func HeaderKey(header string) string {
	return strings.NewReplacer(" ", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(header)))
}

// Get returns the field value as sheet text.
func (p *Project) Get(f Field) string {
	switch f {
	case FieldNo:
		return strconv.Itoa(p.No)
	case FieldBRDNo:
		return p.BRDNo
	case FieldName:
		return p.Name
	case FieldLinkBRD:
		return p.LinkBRD
	case FieldPIC:
		return p.PIC
	case FieldContactPerson:
		return p.ContactPerson
	case FieldStatus:
		return string(p.Status)
	case FieldPriority:
		return p.Priority
	case FieldSubmitDate:
		return p.SubmitDate
	case FieldCompletedDate:
		return p.CompletedDate
	case FieldNotes:
		return p.Notes
	case FieldUID:
		return p.UID
	}
	return ""
}

// Set assigns a field from sheet text. Status and priority are normalized;
// an unparsable sequence number is left unchanged since it is recomputed on
// every save anyway.
func (p *Project) Set(f Field, v string) {
	switch f {
	case FieldNo:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			p.No = n
		}
	case FieldBRDNo:
		p.BRDNo = v
	case FieldName:
		p.Name = v
	case FieldLinkBRD:
		p.LinkBRD = v
	case FieldPIC:
		p.PIC = v
	case FieldContactPerson:
		p.ContactPerson = v
	case FieldStatus:
		p.Status = NormalizeStatus(v)
	case FieldPriority:
		p.Priority = NormalizePriority(v)
	case FieldSubmitDate:
		p.SubmitDate = v
	case FieldCompletedDate:
		p.CompletedDate = v
	case FieldNotes:
		p.Notes = v
	case FieldUID:
		p.UID = strings.TrimSpace(v)
	}
}
