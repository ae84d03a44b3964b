package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datadict/dataset"
	"datadict/provenance"
	"datadict/schema"
)

func TestValidateTable_Pass(t *testing.T) {
	d := roster(t)
	rep := d.ValidateTable(rosterTable(t), true)

	assert.True(t, rep.IsValid())
	assert.NoError(t, rep.Err())
	assert.Empty(t, rep.Mismatch)
	assert.Empty(t, rep.Failures)
	// nickname is free response, only the other three are checked
	require.Len(t, rep.Passes, 3)

	entries := d.Provenance().Entries()
	require.Len(t, entries, 5)

	assert.Empty(t, entries[0].Column)
	assert.Equal(t, "validate", entries[0].Command)
	assert.Equal(t, provenance.CategoryPass, entries[0].Category)
	assert.Equal(t,
		"The columns in the table match the columns in the data dictionary.",
		entries[0].Detail)

	assert.Equal(t, "years_on_team", entries[1].Column)
	assert.Equal(t, "The values were greater than or equal to 1 years", entries[1].Detail)
	assert.Equal(t, "team_captain", entries[2].Column)
	assert.Equal(t, "position", entries[3].Column)
	for _, e := range entries[1:4] {
		assert.Equal(t, provenance.CategoryPass, e.Category)
	}

	assert.Empty(t, entries[4].Column)
	assert.Equal(t, provenance.CategoryPass, entries[4].Category)
	assert.Equal(t, "All columns passed", entries[4].Detail)
}

func TestValidateTable_CopiesQuestionEntries(t *testing.T) {
	years := yearsQuestion(t)
	d, err := New("")
	require.NoError(t, err)
	require.NoError(t, d.Add(years, Options{Silent: true}))

	tbl, err := dataset.NewTable(dataset.Strings("years_on_team", "1", "4"))
	require.NoError(t, err)
	d.ValidateTable(tbl, true)

	// the copied entry is the question's latest, id and timestamp kept
	last, ok := years.Provenance().Last()
	require.True(t, ok)
	entries := d.Provenance().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, last.ID, entries[1].ID)
	assert.Equal(t, last.Detail, entries[1].Detail)
}

func TestValidateTable_ColumnFailure(t *testing.T) {
	d := roster(t)
	tbl, err := dataset.NewTable(
		dataset.Strings("years_on_team", "1", "2", "2", "two dozen"),
		dataset.Strings("team_captain", "TBD", "True", "True", "False"),
		dataset.Strings("position", "Striker", "D-man", "D-man", "Goalie"),
		dataset.Strings("nickname", "Bitty", "Ransom", "Holster", "Johnson"),
	)
	require.NoError(t, err)

	rep := d.ValidateTable(tbl, true)
	assert.False(t, rep.IsValid())
	require.Len(t, rep.Failures, 1)
	assert.Len(t, rep.Passes, 2)

	f := rep.Failures[0]
	assert.Equal(t, "years_on_team", f.Column)
	assert.Equal(t, schema.PhaseType, f.Phase)
	assert.Equal(t, "the data cannot be cast to int", f.Message)

	err = rep.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t,
		"there were issues with the following columns:\n"+
			"\tyears_on_team - the data cannot be cast to int",
		err.Error())

	entries := d.Provenance().Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, provenance.CategoryError, entries[1].Category)
	assert.Equal(t, provenance.CategoryError, entries[4].Category)
	assert.Equal(t,
		"There were issues with the following columns:\nyears_on_team\n"+
			"Please see the log for more details.",
		entries[4].Detail)
}

func TestValidateTable_CollectsEveryFailure(t *testing.T) {
	d := roster(t)
	tbl, err := dataset.NewTable(
		dataset.Strings("years_on_team", "1", "2", "2", "0"),
		dataset.Strings("team_captain", "TBD", "True", "True", "False"),
		dataset.Strings("position", "Striker", "D-man", "Benchwarmer", "Goalie"),
		dataset.Strings("nickname", "Bitty", "Ransom", "Holster", "Johnson"),
	)
	require.NoError(t, err)

	rep := d.ValidateTable(tbl, true)
	assert.Equal(t, []string{"years_on_team", "position"}, rep.FailingColumns())
	assert.Len(t, rep.Passes, 1)

	err = rep.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "\tyears_on_team - There are values less than 1 years")
	assert.Contains(t, err.Error(), "\tposition - The following are not valid values: Benchwarmer")
}

func TestValidateTable_MissingColumn(t *testing.T) {
	d := roster(t)
	tbl, err := dataset.NewTable(
		dataset.Strings("years_on_team", "1", "2"),
		dataset.Strings("team_captain", "True", "False"),
		dataset.Strings("position", "Striker", "Goalie"),
	)
	require.NoError(t, err)

	rep := d.ValidateTable(tbl, true)
	assert.False(t, rep.IsValid())
	assert.Empty(t, rep.Failures)
	assert.Empty(t, rep.Passes)
	assert.Equal(t,
		"There are 1 columns in the data dictionary not in the table, "+
			"and 0 from the table not in the data dictionary.\n"+
			"In the dictionary but not in the table:\n\tnickname",
		rep.Mismatch)
	assert.ErrorIs(t, rep.Err(), ErrMismatch)

	// the placement failure is the only entry, the column checks never ran
	entries := d.Provenance().Entries()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Column)
	assert.Equal(t, provenance.CategoryError, entries[0].Category)
}

func TestValidateTable_RenamedColumn(t *testing.T) {
	d := roster(t)
	tbl, err := dataset.NewTable(
		dataset.Strings("years_on_team", "1", "2"),
		dataset.Strings("team_captain", "True", "False"),
		dataset.Strings("position", "Striker", "Goalie"),
		dataset.Strings("moniker", "Bitty", "Ransom"),
	)
	require.NoError(t, err)

	rep := d.ValidateTable(tbl, true)
	assert.Equal(t,
		"There are 1 columns in the data dictionary not in the table, "+
			"and 1 from the table not in the data dictionary.\n"+
			"In the dictionary but not in the table:\n\tnickname\n"+
			"In the table but not in the dictionary:\n\tmoniker",
		rep.Mismatch)
}

func TestValidateTable_OrderCheck(t *testing.T) {
	d := roster(t)
	tbl, err := dataset.NewTable(
		dataset.Strings("nickname", "Bitty", "Ransom"),
		dataset.Strings("years_on_team", "1", "2"),
		dataset.Strings("team_captain", "True", "False"),
		dataset.Strings("position", "Striker", "Goalie"),
	)
	require.NoError(t, err)

	rep := d.ValidateTable(tbl, true)
	assert.Equal(t,
		"The columns in the dictionary and table are not in the same order.",
		rep.Mismatch)
	assert.ErrorIs(t, rep.Err(), ErrMismatch)

	// the same table passes when order is relaxed
	rep = d.ValidateTable(tbl, false)
	assert.True(t, rep.IsValid())
	assert.NoError(t, rep.Err())
}

func TestValidateTable_Empty(t *testing.T) {
	d, err := New("")
	require.NoError(t, err)
	tbl, err := dataset.NewTable()
	require.NoError(t, err)

	rep := d.ValidateTable(tbl, true)
	assert.True(t, rep.IsValid())

	entries := d.Provenance().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "All columns passed", entries[1].Detail)
}
