// Package dictionary aggregates question schemas into an ordered data
// dictionary: one entry per described column, with container-level
// bookkeeping, whole-table validation and a YAML document form.
//
// # Document shape
//
// A serialized dictionary is a small YAML document:
//
//	version: "1"
//	description: Player survey, spring semester
//	questions:
//	  - name: years_on_team
//	    description: Years the player has been on the roster
//	    type: continuous
//	    dtype: int
//	    limits: 1 | None
//	    units: years
//	  - name: team_captain
//	    description: Has the player been given a C or AC?
//	    type: bool
//	    missing: TBD
//	  - name: position
//	    description: Where the player is normally found on the ice
//	    type: categorical
//	    dtype: str
//	    order: Striker | D-man | Goalie
//
// Question records are flat ordered mappings. Multi-valued attributes
// use the delimited forms of the schema package: " | " between items,
// "=" inside code/label pairs, "None" for an explicit null. Parse
// accepts both plain and code-labelled order lists; Marshal always
// writes records the way schema.(*Question).Record lays them out, so a
// document survives a load/save round trip unchanged.
//
// # Provenance
//
// Every container operation (add, get, drop, update, validate) appends
// an entry to the dictionary's own trail. Whole-table validation also
// folds each checked question's latest entry into it, so one log tells
// the full story of a dataset audit.
package dictionary
