package tablelayout

// idealWidth computes a column's width before container fitting: the
// content width (or the minimum floor, whichever is larger) scaled by the
// semantic type's weight and capped at the configured maximum.
func idealWidth(p ColumnProfile, cfg *Config) float64 {
	base := p.ContentWidth
	if base < cfg.MinColumnWidth {
		base = cfg.MinColumnWidth
	}
	ideal := base * cfg.weight(p.Type)
	if ideal > cfg.MaxColumnWidth {
		ideal = cfg.MaxColumnWidth
	}
	return ideal
}

// allocate turns column profiles into final pixel widths for the given
// container. The result has one entry per profile, in input order.
//
// When the ideal widths overflow the available width, every column shrinks
// proportionally and is then re-clamped to the minimum floor; the re-clamp
// can leave the total slightly above the available width, which is accepted
// overflow rather than something to silently fix. When the ideal widths
// underfill, the slack goes to description columns first, then to columns
// with long content, then evenly to everyone.
func allocate(profiles []ColumnProfile, cfg *Config, containerWidth float64) ([]float64, error) {
	if len(profiles) == 0 {
		return nil, ErrEmptyTable
	}

	widths := make([]float64, len(profiles))

	// Header-only table: every column holds its default profile and stays
	// at the minimum floor, with no slack distribution.
	empty := true
	for _, p := range profiles {
		if p.CellCount > 0 {
			empty = false
			break
		}
	}
	if empty {
		for i := range widths {
			widths[i] = cfg.MinColumnWidth
		}
		return widths, nil
	}

	total := 0.0
	for i, p := range profiles {
		widths[i] = idealWidth(p, cfg)
		total += widths[i]
	}

	available := containerWidth - cfg.ContainerPadding

	switch {
	case total > available:
		scale := available / total
		for i := range widths {
			widths[i] *= scale
			if widths[i] < cfg.MinColumnWidth {
				widths[i] = cfg.MinColumnWidth
			}
		}
	case total < available:
		distributeSlack(widths, profiles, cfg, available-total)
	}

	return widths, nil
}

// distributeSlack hands leftover container width to expandable columns.
// Description columns always outrank merely-long-content columns; when
// neither exists the slack splits evenly. Each recipient stays within the
// configured maximum, so some slack may go unused.
func distributeSlack(widths []float64, profiles []ColumnProfile, cfg *Config, slack float64) {
	var eligible []int
	for i, p := range profiles {
		if p.Type == TypeDescription {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		for i, p := range profiles {
			if p.LongContent {
				eligible = append(eligible, i)
			}
		}
	}
	if len(eligible) == 0 {
		for i := range profiles {
			eligible = append(eligible, i)
		}
	}

	share := slack / float64(len(eligible))
	for _, i := range eligible {
		widths[i] += share
		if widths[i] > cfg.MaxColumnWidth {
			widths[i] = cfg.MaxColumnWidth
		}
	}
}
