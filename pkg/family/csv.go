package family

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lineagekit/lineage/pkg/errors"
)

// Required CSV columns. Any additional column is preserved in Person.Meta.
var requiredColumns = []string{"id", "name", "birth_date", "sex", "parent_ids", "spouse_id"}

// LoadCSV reads a family CSV file and returns the validated Family.
//
// Expected header: id,name,birth_date,sex,parent_ids,spouse_id with
// parent_ids as a comma-separated list inside the field. Extra columns are
// kept as metadata. All failures return INVALID_INPUT errors.
func LoadCSV(path string) (*Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads family CSV data from r and returns the validated Family.
func ParseCSV(r io.Reader) (*Family, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "CSV file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing required columns: %s", strings.Join(missing, ", "))
	}

	var extra []string
	for _, h := range header {
		h = strings.TrimSpace(h)
		if !containsString(requiredColumns, h) {
			extra = append(extra, h)
		}
	}

	fam := New()
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line)
		}

		p, err := parseRecord(record, cols, extra)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line)
		}
		if fam.Get(p.ID) != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: duplicate person ID %d", line, p.ID)
		}
		fam.Add(p)
	}

	if err := validateReferences(fam); err != nil {
		return nil, err
	}
	return fam, nil
}

func parseRecord(record []string, cols map[string]int, extra []string) (*Person, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id, err := strconv.Atoi(field("id"))
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", field("id"))
	}

	name := field("name")
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	birth, err := time.Parse("2006-01-02", field("birth_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid birth_date %q", field("birth_date"))
	}

	sex := Sex(strings.ToUpper(field("sex")))
	if sex != SexMale && sex != SexFemale {
		return nil, fmt.Errorf("invalid sex %q", field("sex"))
	}

	var parentIDs []int
	if s := field("parent_ids"); s != "" {
		for _, part := range strings.Split(s, ",") {
			pid, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid parent ID %q", part)
			}
			parentIDs = append(parentIDs, pid)
		}
	}

	var spouseID *int
	if s := field("spouse_id"); s != "" {
		sid, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid spouse_id %q", s)
		}
		spouseID = &sid
	}

	var meta map[string]string
	for _, col := range extra {
		i := cols[col]
		if i < len(record) && strings.TrimSpace(record[i]) != "" {
			if meta == nil {
				meta = make(map[string]string)
			}
			meta[col] = strings.TrimSpace(record[i])
		}
	}

	return &Person{
		ID:        id,
		Name:      name,
		BirthDate: birth,
		Sex:       sex,
		ParentIDs: parentIDs,
		SpouseID:  spouseID,
		Meta:      meta,
	}, nil
}

// validateReferences rejects parent and spouse IDs that do not resolve to a
// person in the same family. Dangling references are a load-time error, not
// something the pipeline tolerates.
func validateReferences(fam *Family) error {
	var problems []string
	for _, p := range fam.People() {
		for _, pid := range p.ParentIDs {
			if fam.Get(pid) == nil {
				problems = append(problems, fmt.Sprintf("person %d (%s): parent %d does not exist", p.ID, p.Name, pid))
			}
		}
		if p.SpouseID != nil && fam.Get(*p.SpouseID) == nil {
			problems = append(problems, fmt.Sprintf("person %d (%s): spouse %d does not exist", p.ID, p.Name, *p.SpouseID))
		}
	}
	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "reference integrity: %s", strings.Join(problems, "; "))
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
