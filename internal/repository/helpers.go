package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rulezero/playerconnector/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertRecordID converts a SurrealDB ID (which may be a complex object) to a string
func convertRecordID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": "xxx"} format
		if tb, ok := v["tb"].(string); ok {
			if idVal, ok := v["id"]; ok {
				return fmt.Sprintf("%s:%v", tb, idVal)
			}
		}
		if tb, ok := v["Table"].(string); ok {
			if idVal, ok := v["ID"]; ok {
				return fmt.Sprintf("%s:%v", tb, idVal)
			}
		}
	}
	return fmt.Sprintf("%v", id)
}

// convertRecordIDList converts a list of SurrealDB IDs to strings
func convertRecordIDList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, convertRecordID(item))
	}
	return ids
}

// unwrapResult navigates the SurrealDB response wrapper down to a single
// record map. Returns database.ErrNotFound when the result set is empty.
func unwrapResult(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return data, nil
}

// unwrapResults extracts the record maps from a multi-row query response
func unwrapResults(results []interface{}) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		resp, ok := result.(map[string]interface{})
		if !ok {
			continue
		}
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					if data, ok := item.(map[string]interface{}); ok {
						records = append(records, data)
					}
				}
				continue
			}
		}
		records = append(records, resp)
	}
	return records
}

// decodeRecord normalizes record-id fields and unmarshals the map into dst
func decodeRecord(data map[string]interface{}, idListFields []string, dst interface{}) error {
	if id, ok := data["id"]; ok {
		data["id"] = convertRecordID(id)
	}
	for _, field := range idListFields {
		if v, ok := data[field]; ok {
			data[field] = convertRecordIDList(v)
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, dst)
}

// extractCreatedID extracts the new record's id from a CREATE query result
func extractCreatedID(result []interface{}) (string, error) {
	if len(result) == 0 {
		return "", errors.New("no result returned")
	}

	first := result[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if resultData, ok := resp["result"].([]interface{}); ok && len(resultData) > 0 {
			first = resultData[0]
		}
	}

	data, ok := first.(map[string]interface{})
	if !ok {
		return "", errors.New("unexpected result format")
	}

	id, ok := data["id"]
	if !ok {
		return "", errors.New("created record has no id")
	}
	return convertRecordID(id), nil
}
