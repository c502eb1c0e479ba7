package area

import "log/slog"

// Resolver maps series identifiers to geography names using the loaded
// reference tables. Safe for concurrent use; the tables are read-only.
type Resolver struct {
	tables Tables
	logger *slog.Logger
}

// NewResolver creates a Resolver over the given tables.
func NewResolver(tables Tables, logger *slog.Logger) *Resolver {
	return &Resolver{tables: tables, logger: logger}
}

// Resolve returns the geography name for a series identifier. ok is false
// when no program family claims the identifier (not an error). A claimed
// identifier whose geography code is missing from its owning table returns
// UnknownGeographyError.
func (r *Resolver) Resolve(id string) (name string, ok bool, err error) {
	def, code, ok := classify(id)
	if !ok {
		return "", false, nil
	}
	name, found := def.table(r.tables)[code]
	if !found {
		return "", true, &UnknownGeographyError{SeriesID: id, Scheme: def.scheme, AreaCode: code}
	}
	return name, true, nil
}

// ResolveAll builds the location map for ids. Identifiers outside the three
// families are omitted. In strict mode the first unknown geography code
// aborts; otherwise it is logged and skipped so one bad identifier does not
// lose the rest of the map.
func (r *Resolver) ResolveAll(ids []string, strict bool) (map[string]string, error) {
	locations := make(map[string]string, len(ids))
	for _, id := range ids {
		name, ok, err := r.Resolve(id)
		if err != nil {
			if strict {
				return nil, err
			}
			r.logger.Warn("skipping unresolvable series location", "series_id", id, "error", err)
			continue
		}
		if !ok {
			continue
		}
		locations[id] = name
	}
	return locations, nil
}
