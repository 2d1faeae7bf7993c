package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// versionedCodesFile is the on-disk shape of the ICD-10-GM and ICD-O-3
// YAML fixtures: one code list per catalog version.
type versionedCodesFile map[string][]string

// LoadStaticCatalog reads the ICD-10-GM and ICD-O-3 axes from YAML
// files (one map of version to code list each) and the ATC axis from
// a single-column CSV file, and builds a StaticCatalog from them. Any
// of the three paths may be empty, in which case that axis is loaded
// with no versions/codes at all.
func LoadStaticCatalog(icd10GMPath, icdO3Path, atcPath string) (*StaticCatalog, error) {
	icd10GM, err := loadVersionedCodes(icd10GMPath)
	if err != nil {
		return nil, fmt.Errorf("loading ICD-10-GM catalog: %w", err)
	}

	icdO3, err := loadICDO3(icdO3Path)
	if err != nil {
		return nil, fmt.Errorf("loading ICD-O-3 catalog: %w", err)
	}

	atc, err := loadATC(atcPath)
	if err != nil {
		return nil, fmt.Errorf("loading ATC catalog: %w", err)
	}

	return NewStaticCatalog(StaticCatalogData{
		ICD10GM:         icd10GM,
		ICDO3Topography: icdO3.topography,
		ICDO3Morphology: icdO3.morphology,
		ATC:             atc,
	}), nil
}

func loadVersionedCodes(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var codes versionedCodesFile
	if err := yaml.Unmarshal(raw, &codes); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return codes, nil
}

type icdO3Axes struct {
	topography map[string][]string
	morphology map[string][]string
}

// icdO3File is the ICD-O-3 YAML fixture shape: topography and
// morphology are two distinct axes sharing one version scheme.
type icdO3File struct {
	Topography versionedCodesFile `yaml:"topography"`
	Morphology versionedCodesFile `yaml:"morphology"`
}

func loadICDO3(path string) (icdO3Axes, error) {
	if path == "" {
		return icdO3Axes{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return icdO3Axes{}, err
	}

	var file icdO3File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return icdO3Axes{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return icdO3Axes{
		topography: file.Topography,
		morphology: file.Morphology,
	}, nil
}

func loadATC(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 1

	var codes []string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		codes = append(codes, record[0])
	}

	return codes, nil
}
