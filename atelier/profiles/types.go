package profiles

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-ai/server/internal/styleprofile"
)

type Repository struct {
	db *pgxpool.Pool
}

// JSONB wrapper for the profile's cluster list
type ClusterList []styleprofile.Cluster

func (cl ClusterList) Value() (driver.Value, error) {
	if len(cl) == 0 {
		return "[]", nil
	}

	bytes, err := json.Marshal(cl)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (cl *ClusterList) Scan(value interface{}) error {
	if value == nil {
		*cl = []styleprofile.Cluster{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, cl)
}

// JSONB wrapper for signature elements
type signatureJSON styleprofile.SignatureElements

func (s signatureJSON) Value() (driver.Value, error) {
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (s *signatureJSON) Scan(value interface{}) error {
	if value == nil {
		*s = signatureJSON{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// JSONB wrapper for aggregate statistics
type statisticsJSON styleprofile.Statistics

func (s statisticsJSON) Value() (driver.Value, error) {
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (s *statisticsJSON) Scan(value interface{}) error {
	if value == nil {
		*s = statisticsJSON{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, s)
}
