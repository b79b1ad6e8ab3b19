package metadata

import (
	"archive/zip"
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrCorruptArchive is returned when the archive cannot be opened or
	// an entry cannot be read.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrMissingMetadata is returned when the dist-info directory holds
	// neither metadata.json nor METADATA.
	ErrMissingMetadata = errors.New("no metadata.json or METADATA found in dist-info")

	// ErrMalformedMetadata is returned when metadata.json exists but is
	// not valid JSON.
	ErrMalformedMetadata = errors.New("malformed metadata.json")

	// ErrMissingName is returned when a METADATA file has no Name field.
	ErrMissingName = errors.New("METADATA has no Name field")
)

// Requirement is one run_requires entry from the package metadata.
// An empty Extra means the requirement always applies; a non-empty Extra
// restricts it to that optional feature group. An empty Environment means
// the requirement is unconditional; otherwise it is a PEP 508 marker to be
// evaluated by a collaborator.
type Requirement struct {
	Extra       string   `json:"extra"`
	Environment string   `json:"environment"`
	Requires    []string `json:"requires"`
}

// Metadata is the normalized package record. It is produced once per
// archive regardless of whether the archive carried structured
// metadata.json or the informal METADATA key:value format.
type Metadata struct {
	Name        string        `json:"name"`
	RunRequires []Requirement `json:"run_requires"`
	Extras      []string      `json:"extras"`
}

// Read locates and parses the package metadata inside the archive.
// metadata.json is preferred; METADATA is the fallback when (and only
// when) metadata.json is absent. A malformed metadata.json is an error,
// never a reason to fall back, since the two files may disagree.
func Read(archivePath, distInfoDir string) (*Metadata, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrCorruptArchive, archivePath, err)
	}
	defer r.Close()

	if f := find(&r.Reader, distInfoDir+"/metadata.json"); f != nil {
		return readJSON(f)
	}
	if f := find(&r.Reader, distInfoDir+"/METADATA"); f != nil {
		return readKeyValue(f)
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingMetadata, distInfoDir)
}

func find(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readJSON(f *zip.File) (*Metadata, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if meta.RunRequires == nil {
		meta.RunRequires = []Requirement{}
	}
	if meta.Extras == nil {
		meta.Extras = []string{}
	}
	return &meta, nil
}

// readKeyValue parses the informal METADATA format
// (https://www.python.org/dev/peps/pep-0314/), extracting the Name field.
func readKeyValue(f *zip.File) (*Metadata, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "Name: "); ok {
			return &Metadata{
				Name:        strings.TrimSpace(name),
				RunRequires: []Requirement{},
				Extras:      []string{},
			}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingName, f.Name)
}
