package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/net/publicsuffix"

	_ "embed"
)

//go:embed jd_analysis.schema.json
var jdAnalysisSchema string

// JDAnalysis is the structured result of analyzing a job description.
type JDAnalysis struct {
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	Keywords        []string `json:"keywords"`
	Summary         string   `json:"summary"`
	Source          string   `json:"source,omitempty"`
}

// AnalyzeJD extracts skills, keywords and requirements from a job
// description. A response the model garbles degrades to an empty analysis
// with an error summary rather than failing the call; the extracted
// keywords drive the optimize flow either way.
func (c *Client) AnalyzeJD(ctx context.Context, jdText string) (JDAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze the following Job Description and extract the key information in JSON format.
Return ONLY the JSON object, no other text.

Structure:
{
    "skills": ["skill1", "skill2"],
    "experience_years": "integer or null",
    "keywords": ["keyword1", "keyword2"],
    "summary": "brief summary of the role"
}

Job Description:
%s
`, jdText)

	out, err := c.chat(ctx, prompt)
	if err != nil {
		return JDAnalysis{}, err
	}

	raw := stripFences(out)
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		if sub, ok := extractJSON(raw); ok {
			err = json.Unmarshal([]byte(sub), &m)
		}
		if err != nil || m == nil {
			fmt.Printf("ai.jd: response was not parseable JSON: %.120s\n", raw)
			return JDAnalysis{Skills: []string{}, Keywords: []string{}, Summary: "Error: could not parse JD analysis"}, nil
		}
	}

	if err := validateJDMap(m); err != nil {
		fmt.Printf("ai.jd: analysis failed schema validation: %v\n", err)
		return JDAnalysis{Skills: []string{}, Keywords: []string{}, Summary: "Error: could not parse JD analysis"}, nil
	}

	return jdFromMap(m), nil
}

func validateJDMap(m map[string]interface{}) error {
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(jdAnalysisSchema), gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}

func jdFromMap(m map[string]interface{}) JDAnalysis {
	out := JDAnalysis{Skills: []string{}, Keywords: []string{}}
	out.Skills = stringSlice(m["skills"])
	out.Keywords = stringSlice(m["keywords"])
	if s, ok := m["summary"].(string); ok {
		out.Summary = s
	}
	switch v := m["experience_years"].(type) {
	case float64:
		y := int(v)
		out.ExperienceYears = &y
	case string:
		if y, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			out.ExperienceYears = &y
		}
	}
	return out
}

func stringSlice(raw interface{}) []string {
	out := []string{}
	arr, ok := raw.([]interface{})
	if !ok {
		return out
	}
	for _, it := range arr {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// SourceLabel derives a tidy eTLD+1 label from a job-posting URL
// ("https://jobs.acme.co.uk/123" -> "acme.co.uk"). Empty when the URL is
// blank or unparseable.
func SourceLabel(jobURL string) string {
	jobURL = strings.TrimSpace(jobURL)
	if jobURL == "" {
		return ""
	}
	candidate := jobURL
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if host == "" {
		return ""
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
