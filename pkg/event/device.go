package event

import (
	"encoding/json"
	"fmt"
)

// DeviceEntry is the per-device subtree of a wrapped payload. Machine data
// and both camera statistics blocks are kept as raw JSON so the document
// store receives them byte-for-byte as published.
type DeviceEntry struct {
	MachineData            json.RawMessage `json:"machineData"`
	CamStatisticsPerMinute json.RawMessage `json:"camStatistics_PerMinute"`
	CamStatisticsPercent   json.RawMessage `json:"camStatistics_Percent"`
}

// ExtractDevice unwraps a payload keyed by device identifier. The payload
// must contain exactly one device entry; zero or multiple entries are
// rejected instead of silently picking one in map order.
func ExtractDevice(data json.RawMessage) (string, DeviceEntry, error) {
	var byDevice map[string]DeviceEntry
	if err := json.Unmarshal(data, &byDevice); err != nil {
		return "", DeviceEntry{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(byDevice) > 1 {
		return "", DeviceEntry{}, fmt.Errorf("%w: got %d", ErrMultipleDevices, len(byDevice))
	}
	for id, entry := range byDevice {
		return id, entry, nil
	}
	return "", DeviceEntry{}, ErrNoDevice
}

// DeviceData is the unwrapped payload shape: one machine's state snapshot
// plus the two camera statistics blocks.
type DeviceData struct {
	MachineData MachineData    `json:"machineData"`
	PerMinute   PerMinuteStats `json:"camStatistics_PerMinute"`
	Percent     PercentStats   `json:"camStatistics_Percent"`
}

// MachineData carries the machine state tags. Everything except the device
// id and timestamp stays loosely typed: simulators emit these as numbers or
// strings and either binds fine as a SQL parameter, while a missing field
// binds NULL.
type MachineData struct {
	DeviceID           string `json:"DeviceID"`
	TimeStamp          string `json:"TimeStamp"`
	StateCurrent       any    `json:"StateCurrent"`
	CurMachSpeed       any    `json:"CurMachSpeed"`
	MachSpeed          any    `json:"MachSpeed"`
	ProdProcessedCount any    `json:"ProdProcessedCount"`
}

// PerMinuteStats are raw per-minute camera counts.
type PerMinuteStats struct {
	Minutes   any `json:"minutes"`
	First     any `json:"first"`
	Last      any `json:"last"`
	Total     any `json:"total"`
	Empty     any `json:"empty"`
	OK        any `json:"ok"`
	Returns   any `json:"returns"`
	Waste     any `json:"waste"`
	Double    any `json:"double"`
	Bellyback any `json:"bellyback"`
	Head      any `json:"head"`
	Misc      any `json:"misc"`
	TotalFPM  any `json:"total_fpm"`
	DbgTotal  any `json:"dbg_total"`
}

// PercentStats are the same camera categories as percentage breakdowns.
type PercentStats struct {
	Minutes   any `json:"minutes"`
	Total     any `json:"total"`
	Empty     any `json:"empty"`
	OK        any `json:"ok"`
	Returns   any `json:"returns"`
	Waste     any `json:"waste"`
	Double    any `json:"double"`
	Bellyback any `json:"bellyback"`
	Head      any `json:"head"`
	Misc      any `json:"misc"`
}
