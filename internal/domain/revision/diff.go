// Package revision builds customer-facing summaries of what changed between
// two snapshots of a quote's options.
package revision

import (
	"fmt"
	"strconv"
	"strings"

	"clearpoint_av/internal/domain/entities"
)

// GenerateDiffSummary compares two option snapshots by stable id and returns
// a flat, line-oriented change list. It reports added/removed options, areas
// and items, item quantity changes, labor day changes, and scope-of-work
// edits; other field changes are intentionally not tracked.
//
// A revisionNumber > 0 selects the revision header. The empty string is
// returned when nothing changed: callers supply their own placeholder text.
func GenerateDiffSummary(originalOptions, currentOptions []entities.QuoteOption, revisionNumber int) string {
	var changes []string

	originalByID := optionsByID(originalOptions)
	currentByID := optionsByID(currentOptions)

	for _, current := range currentOptions {
		if _, ok := originalByID[current.ID]; !ok {
			changes = append(changes, fmt.Sprintf("- Added new option: %q", current.Name))
		}
	}
	for _, original := range originalOptions {
		if _, ok := currentByID[original.ID]; !ok {
			changes = append(changes, fmt.Sprintf("- Removed option: %q", original.Name))
		}
	}

	for _, current := range currentOptions {
		original, ok := originalByID[current.ID]
		if !ok {
			continue
		}
		changes = append(changes, diffOption(original, current)...)
	}

	if len(changes) == 0 {
		return ""
	}

	header := "Summary of changes:"
	if revisionNumber > 0 {
		header = fmt.Sprintf("Summary for Revision %d:", revisionNumber)
	}
	return header + "\n\n" + strings.Join(changes, "\n")
}

func diffOption(original, current entities.QuoteOption) []string {
	var changes []string

	originalAreas := areasByID(original.Areas)
	currentAreas := areasByID(current.Areas)

	for _, area := range current.Areas {
		if _, ok := originalAreas[area.ID]; !ok {
			changes = append(changes, fmt.Sprintf("- Added area: %q", area.Name))
		}
	}
	for _, area := range original.Areas {
		if _, ok := currentAreas[area.ID]; !ok {
			changes = append(changes, fmt.Sprintf("- Removed area: %q", area.Name))
		}
	}

	for _, currentArea := range current.Areas {
		originalArea, ok := originalAreas[currentArea.ID]
		if !ok {
			continue
		}
		changes = append(changes, diffArea(originalArea, currentArea)...)
	}

	for _, currentLabor := range current.LaborCategories {
		for _, originalLabor := range original.LaborCategories {
			if originalLabor.ID != currentLabor.ID {
				continue
			}
			if originalLabor.EstimatedTechDays != currentLabor.EstimatedTechDays {
				changes = append(changes, fmt.Sprintf("- Changed labor for %q from %s to %s days",
					currentLabor.Name, formatDays(originalLabor.EstimatedTechDays), formatDays(currentLabor.EstimatedTechDays)))
			}
			break
		}
	}

	if original.ScopeOfWork != current.ScopeOfWork {
		changes = append(changes, "- Updated the Scope of Work.")
	}

	return changes
}

func diffArea(original, current entities.QuoteArea) []string {
	var changes []string

	originalItems := itemsByID(original.Items)
	currentItems := itemsByID(current.Items)

	for _, currentItem := range current.Items {
		originalItem, ok := originalItems[currentItem.ID]
		if !ok {
			changes = append(changes, fmt.Sprintf("- In %q: Added %dx %s", current.Name, currentItem.Quantity, currentItem.Name))
		} else if originalItem.Quantity != currentItem.Quantity {
			changes = append(changes, fmt.Sprintf("- In %q: Changed quantity of %s from %d to %d",
				current.Name, currentItem.Name, originalItem.Quantity, currentItem.Quantity))
		}
	}
	for _, originalItem := range original.Items {
		if _, ok := currentItems[originalItem.ID]; !ok {
			changes = append(changes, fmt.Sprintf("- In %q: Removed %s", current.Name, originalItem.Name))
		}
	}

	return changes
}

func optionsByID(options []entities.QuoteOption) map[string]entities.QuoteOption {
	m := make(map[string]entities.QuoteOption, len(options))
	for _, opt := range options {
		m[opt.ID] = opt
	}
	return m
}

func areasByID(areas []entities.QuoteArea) map[string]entities.QuoteArea {
	m := make(map[string]entities.QuoteArea, len(areas))
	for _, a := range areas {
		m[a.ID] = a
	}
	return m
}

func itemsByID(items []entities.QuoteItem) map[string]entities.QuoteItem {
	m := make(map[string]entities.QuoteItem, len(items))
	for _, i := range items {
		m[i.ID] = i
	}
	return m
}

func formatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
