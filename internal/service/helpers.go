package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
)

func isClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}

// payloadString renders a decoded JSON value as sheet text.
func payloadString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// applyPayload sets every known field in payload on p and returns the
// fields whose value changed, in column order. The sequence number and uid
// are never taken from a payload. When a field appears under several keys,
// the canonical header wins.
func applyPayload(p *domain.Project, payload Payload) []domain.Field {
	resolved := make(map[domain.Field]string)
	canonical := make(map[domain.Field]bool)
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f, ok := domain.LookupField(k)
		if !ok || f == domain.FieldNo || f == domain.FieldUID {
			continue
		}
		isCanonical := strings.TrimSpace(k) == string(f)
		if canonical[f] && !isCanonical {
			continue
		}
		resolved[f] = payloadString(payload[k])
		canonical[f] = canonical[f] || isCanonical
	}

	var changed []domain.Field
	for _, f := range domain.Columns {
		v, ok := resolved[f]
		if !ok {
			continue
		}
		before := p.Get(f)
		p.Set(f, v)
		if p.Get(f) != before {
			changed = append(changed, f)
		}
	}
	return changed
}

func fieldNames(fields []domain.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
