package fileio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cardsmith/internal/content"
)

// Spreadsheet-row card import.
//
// Authors draft card sets in a spreadsheet with one row per card and flat
// columns for both action sides. The adapter maps each row 1:1 onto a
// CardDescriptor with left/right "add" actions:
//
//	id, name, text, location            card fields
//	left, right                         action descriptions
//	next_left_id, next_right_id         event links (presence makes the
//	                                    card an event card)
//	<parameter>_left, <parameter>_right per-side value modifiers, e.g.
//	                                    money_left, environment_right
//
// Unknown columns are ignored. Rows without an id get a generated one so
// that Load can key them.

// ParseCardRows reads CSV card rows (header row required) into card records.
func ParseCardRows(r io.Reader) ([]content.CardDescriptor, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may omit trailing columns
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []content.CardDescriptor{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	ids := content.NewIDSource("rowcard")
	var cards []content.CardDescriptor
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		fields := make(map[string]string, len(header))
		for i, value := range record {
			if i < len(header) && header[i] != "" {
				fields[header[i]] = strings.TrimSpace(value)
			}
		}

		card, err := cardFromRow(fields, ids)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		cards = append(cards, card)
	}
	if cards == nil {
		cards = []content.CardDescriptor{}
	}
	return cards, nil
}

func cardFromRow(fields map[string]string, ids *content.IDSource) (content.CardDescriptor, error) {
	id := fields["id"]
	if id == "" {
		id = ids.Next()
	}

	nextLeft := fields["next_left_id"]
	nextRight := fields["next_right_id"]

	cardType := content.CardAction
	if nextLeft != "" || nextRight != "" {
		cardType = content.CardEvent
	}

	left, err := actionFromRow(fields, content.ActionLeft, fields["left"], nextLeft)
	if err != nil {
		return content.CardDescriptor{}, err
	}
	right, err := actionFromRow(fields, content.ActionRight, fields["right"], nextRight)
	if err != nil {
		return content.CardDescriptor{}, err
	}

	return content.CardDescriptor{
		ID:         id,
		Name:       fields["name"],
		Text:       fields["text"],
		Location:   fields["location"],
		Type:       cardType,
		Weight:     1,
		Conditions: []content.CardCondition{},
		Actions:    []content.ActionData{left, right},
	}, nil
}

func actionFromRow(fields map[string]string, actionID, description, nextCardID string) (content.ActionData, error) {
	suffix := "_" + actionID
	values := map[string]float64{}
	for column, raw := range fields {
		param, ok := strings.CutSuffix(column, suffix)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return content.ActionData{}, fmt.Errorf("column %q: %q is not a number", column, raw)
		}
		values[param] = v
	}

	return content.ActionData{
		ActionID:     actionID,
		Description:  description,
		ModifierType: content.ModifierAdd,
		Values:       values,
		Flags:        map[string]bool{},
		NextCardID:   nextCardID,
	}, nil
}
