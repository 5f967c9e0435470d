package posting

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

var ErrInvalidSalaryRange = errors.New("invalid salary range")

var (
	stringSliceType = reflect.TypeOf([]string{})
	salaryRangeType = reflect.TypeOf(SalaryRange{})
)

// Decode converts one raw scraper record into a JobPosting.
// Non-string entries of string lists are dropped. salary_range accepts [low, high] or {low, high}.
func Decode(record map[string]any) (*JobPosting, error) {
	var p JobPosting

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dropNonStringsHook,
			salaryRangeHook,
		),
		Result: &p,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(record); err != nil {
		return nil, fmt.Errorf("decode posting: %w", err)
	}

	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("validate posting: %w", err)
	}
	if err := checkSalaryRange(p.SalaryRange); err != nil {
		return nil, fmt.Errorf("validate posting: %w", err)
	}

	if strings.TrimSpace(p.ID) == "" {
		p.ID = DeriveID(&p)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	return &p, nil
}

// DeriveID builds a stable id from the fields that identify a posting at its source.
func DeriveID(p *JobPosting) string {
	key := strings.Join([]string{p.Source, p.ApplyLink, p.Title, p.Company}, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// DecodeAll decodes raw records, failing on the first malformed one.
func DecodeAll(records []map[string]any) (*Postings, error) {
	out := &Postings{Items: make([]*JobPosting, 0, len(records))}
	for idx, record := range records {
		p, err := Decode(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		out.Items = append(out.Items, p)
	}
	return out, nil
}

// LoadFile reads a JSON or YAML list of raw postings. Files ending in .yaml or .yml are read as YAML.
func LoadFile(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parse postings file %q: %w", path, err)
	}

	return DecodeAll(records)
}

func dropNonStringsHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if t != stringSliceType || data == nil {
		return data, nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return data, nil
	}

	out := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if s, ok := v.Index(i).Interface().(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func salaryRangeHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if t != salaryRangeType || data == nil {
		return data, nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return data, nil
	}
	if v.Len() != 2 {
		return nil, fmt.Errorf("salary_range must have exactly two bounds, got %d", v.Len())
	}

	return map[string]any{
		"low":  v.Index(0).Interface(),
		"high": v.Index(1).Interface(),
	}, nil
}

// checkSalaryRange rejects empty and inverted ranges. A zero high bound alone is open ended.
func checkSalaryRange(r *SalaryRange) error {
	switch {
	case r == nil:
		return nil
	case r.Low == 0 && r.High == 0:
		return fmt.Errorf("%w: salary_range [0, 0] has no bounds", ErrInvalidSalaryRange)
	case r.High > 0 && r.High < r.Low:
		return fmt.Errorf("%w: high %v is below low %v", ErrInvalidSalaryRange, r.High, r.Low)
	}
	return nil
}
