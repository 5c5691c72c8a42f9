package health

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// maxWireDepth is the nesting the wire schema documents: a top-level mapping
// of probe name to either a bare status or a {status, details} object whose
// inner values are bare statuses.
const maxWireDepth = 2

var probeNameRE = regexp.MustCompile(`^[a-zA-Z_]+$`)

// Wire types for the health document.

type selfLink struct {
	Href string `json:"href"`
}

type reportLinks struct {
	Self selfLink `json:"self"`
}

type reportDocument struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
	Links   reportLinks    `json:"links"`
}

// Render serializes a report into the health endpoint's wire format:
//
//	{"status": ..., "details": {...}, "links": {"self": {"href": ...}}}
//
// Leaf results render as bare status strings; composites render as
// {status, details} one level deep. A tree deeper than the wire format
// supports is a configuration error (ErrNestingTooDeep), never a silent
// truncation: callers targeting this format must design their probe set
// accordingly. selfHref is supplied by the caller, typically from the
// request URL.
func Render(report Report, selfHref string) ([]byte, error) {
	if selfHref == "" {
		return nil, ErrMissingSelfHref
	}

	doc := reportDocument{
		Status: report.Status.String(),
		Links:  reportLinks{Self: selfLink{Href: selfHref}},
	}

	if len(report.Details) > 0 {
		doc.Details = make(map[string]any, len(report.Details))
		for name, res := range report.Details {
			value, err := renderResult(name, res, 1)
			if err != nil {
				return nil, err
			}
			doc.Details[name] = value
		}
	}

	return json.Marshal(doc)
}

func renderResult(name string, res ProbeResult, depth int) (any, error) {
	if !probeNameRE.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProbeName, name)
	}

	if len(res.Children) == 0 {
		return res.Status.String(), nil
	}

	if depth >= maxWireDepth {
		return nil, fmt.Errorf("%w: probe %q", ErrNestingTooDeep, name)
	}

	details := make(map[string]any, len(res.Children))
	for childName, child := range res.Children {
		value, err := renderResult(childName, child, depth+1)
		if err != nil {
			return nil, err
		}
		details[childName] = value
	}

	return map[string]any{
		"status":  res.Rollup().String(),
		"details": details,
	}, nil
}

// ParseReportDocument parses a rendered health document back into a Report.
// It accepts exactly the shape Render produces and is primarily useful to
// clients of the health endpoint.
func ParseReportDocument(data []byte) (Report, error) {
	var doc reportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Report{}, fmt.Errorf("health: parsing report document: %w", err)
	}

	status, err := ParseStatus(doc.Status)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Status:   status,
		SelfLink: doc.Links.Self.Href,
	}

	if len(doc.Details) > 0 {
		report.Details = make(map[string]ProbeResult, len(doc.Details))
		for name, raw := range doc.Details {
			res, err := parseResult(name, raw)
			if err != nil {
				return Report{}, err
			}
			report.Details[name] = res
		}
	}

	return report, nil
}

func parseResult(name string, raw any) (ProbeResult, error) {
	switch v := raw.(type) {
	case string:
		status, err := ParseStatus(v)
		if err != nil {
			return ProbeResult{}, err
		}
		return ProbeResult{Name: name, Status: status}, nil

	case map[string]any:
		statusStr, _ := v["status"].(string)
		status, err := ParseStatus(statusStr)
		if err != nil {
			return ProbeResult{}, err
		}
		result := ProbeResult{Name: name, Status: status}
		if inner, ok := v["details"].(map[string]any); ok && len(inner) > 0 {
			result.Children = make(map[string]ProbeResult, len(inner))
			for childName, childRaw := range inner {
				child, err := parseResult(childName, childRaw)
				if err != nil {
					return ProbeResult{}, err
				}
				result.Children[childName] = child
			}
		}
		return result, nil

	default:
		return ProbeResult{}, fmt.Errorf("health: unexpected detail value for probe %q", name)
	}
}
