// Package validation checks request records against ordered, per-field rule
// tables. A Ruleset is data; Validate is the single interpreter that walks it.
package validation
