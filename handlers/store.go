// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"

	"github.com/kzhou57/stagevote/models"
	"github.com/kzhou57/stagevote/scoring"
)

// fetchVotes reads the raw vote log for one work in append order. The seq
// ordering matters: ts has one-second resolution, and without it postgres
// may return equal-ts rows in a different order on every scan.
// Deduplication to the live set happens in the scoring package.
func fetchVotes(db *sql.DB, workID string) ([]models.Vote, error) {
	rows, err := db.Query(`
		SELECT work_id, user_id, points, ts FROM vote WHERE work_id = $1 ORDER BY seq
	`, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.WorkID, &v.UserID, &v.Points, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

// fetchWeights loads the weight table for all accounts. The voter
// population is operator-bounded, so reading it whole is cheaper than
// per-dialect IN-list plumbing.
func fetchWeights(db *sql.DB) (map[string]float64, error) {
	rows, err := db.Query(`
		SELECT user_id, COALESCE(weight, '') FROM account
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	weights := make(map[string]float64)
	for rows.Next() {
		var userID, raw string
		if err := rows.Scan(&userID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		weights[userID] = scoring.ParseWeight(raw)
	}

	return weights, rows.Err()
}

func workExists(db *sql.DB, workID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM work WHERE work_id = $1)
	`, workID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query work: %w", err)
	}
	return exists, nil
}

func listWorks(db *sql.DB) ([]models.Work, error) {
	rows, err := db.Query(`
		SELECT work_id, title FROM work ORDER BY work_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query works: %w", err)
	}
	defer rows.Close()

	works := []models.Work{}
	for rows.Next() {
		var w models.Work
		if err := rows.Scan(&w.WorkID, &w.Title); err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, w)
	}

	return works, rows.Err()
}
