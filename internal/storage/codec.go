package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"chromatic/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Stamp fills the version envelope on a record about to be persisted.
func Stamp(run model.RunRecord) model.RunRecord {
	run.SchemaVersion = CurrentSchemaVersion
	run.CodecVersion = CurrentCodecVersion
	return run
}

func EncodeRun(run model.RunRecord) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(record model.VersionedRecord) error {
	if record.SchemaVersion != CurrentSchemaVersion {
		return fmt.Errorf("%w: schema %d, want %d", ErrVersionMismatch, record.SchemaVersion, CurrentSchemaVersion)
	}
	if record.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: codec %d, want %d", ErrVersionMismatch, record.CodecVersion, CurrentCodecVersion)
	}
	return nil
}
