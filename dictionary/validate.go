package dictionary

import (
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"datadict/dataset"
	"datadict/provenance"
	"datadict/schema"
)

// ValidateTable checks tbl against the dictionary: first that the
// table's columns line up with the entries, then every question against
// its column. A failed question does not stop the pass, its verdict is
// collected and the next column is checked. checkOrder relaxes only the
// order comparison, the column sets must always match.
//
// The dictionary trail records the placement outcome, the latest entry
// of every checked question, and a closing summary.
func (d *Dictionary) ValidateTable(tbl *dataset.Table, checkOrder bool) *Report {
	rep := &Report{}

	msg, aligned := d.alignment(tbl, checkOrder)
	if !aligned {
		rep.Mismatch = msg
		d.log.Append("", "validate", provenance.CategoryError, msg)
		log.Debugf("dictionary validation stopped: %s", msg)
		return rep
	}
	d.log.Append("", "validate", provenance.CategoryPass, msg)

	for _, q := range d.questions {
		if q.Response == schema.ResponseFree {
			continue
		}
		col, ok := tbl.Column(q.Name)
		if !ok {
			continue
		}

		rep.addVerdict(q.Check(col))
		if e, ok := q.Provenance().Last(); ok {
			d.log.Copy(e)
		}
	}

	if len(rep.Failures) == 0 {
		d.log.Append("", "validate", provenance.CategoryPass, "All columns passed")
	} else {
		d.log.Append("", "validate", provenance.CategoryError, fmt.Sprintf(
			"There were issues with the following columns:\n%s\n"+
				"Please see the log for more details.",
			strings.Join(rep.FailingColumns(), "\n")))
	}
	log.Debugf("dictionary validation: %d passed, %d failed",
		len(rep.Passes), len(rep.Failures))
	return rep
}

// alignment compares the table's column names against the dictionary
// entries: set equality always, order equality when checkOrder is set.
func (d *Dictionary) alignment(tbl *dataset.Table, checkOrder bool) (string, bool) {
	have := tbl.Names()
	want := d.Names()

	inDict := missingFrom(want, have)
	inTable := missingFrom(have, want)
	if len(inDict) > 0 || len(inTable) > 0 {
		msg := fmt.Sprintf(
			"There are %d columns in the data dictionary not in the table, "+
				"and %d from the table not in the data dictionary.",
			len(inDict), len(inTable))
		if len(inDict) > 0 {
			msg += "\nIn the dictionary but not in the table:\n\t" + strings.Join(inDict, "; ")
		}
		if len(inTable) > 0 {
			msg += "\nIn the table but not in the dictionary:\n\t" + strings.Join(inTable, "; ")
		}
		return msg, false
	}

	if checkOrder && !slices.Equal(have, want) {
		return "The columns in the dictionary and table are not in the same order.", false
	}
	return "The columns in the table match the columns in the data dictionary.", true
}

// missingFrom lists the names in want with no match in have, order kept.
func missingFrom(want, have []string) []string {
	present := make(map[string]bool, len(have))
	for _, n := range have {
		present[n] = true
	}

	var out []string
	for _, n := range want {
		if !present[n] {
			out = append(out, n)
		}
	}
	return out
}
