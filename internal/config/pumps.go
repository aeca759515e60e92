package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iwtcode/velvetpour/internal/domain/models"
)

// PumpMapping - таблица "логический насос -> линии GPIO", фиксируется при старте.
type PumpMapping = models.PumpMapping

// pumpMapFile - формат YAML файла разводки:
//
//	master_valve: 26
//	pumps:
//	  1: {valve: 17, sensor: 27}
//	  2: {valve: 22, sensor: 23}
type pumpMapFile struct {
	MasterValve *int                   `yaml:"master_valve"`
	Pumps       map[int]models.PinPair `yaml:"pumps"`
}

// Разводка стенда по умолчанию (BCM нумерация Raspberry Pi).
var defaultPumps = PumpMapping{
	1: {ValveLine: 17, SensorLine: 27},
	2: {ValveLine: 22, SensorLine: 23},
	3: {ValveLine: 24, SensorLine: 25},
	4: {ValveLine: 5, SensorLine: 6},
	5: {ValveLine: 12, SensorLine: 13},
	6: {ValveLine: 16, SensorLine: 19},
}

// loadPumpMapping выбирает источник разводки: файл, затем строка из env, затем значения по умолчанию.
func loadPumpMapping(hw *HardwareConfig) (PumpMapping, error) {
	var (
		pumps PumpMapping
		err   error
	)

	switch {
	case hw.PumpMapFile != "":
		pumps, err = readPumpMapFile(hw.PumpMapFile, hw)
	case hw.PumpMap != "":
		pumps, err = ParsePumpMap(hw.PumpMap)
	default:
		pumps = make(PumpMapping, len(defaultPumps))
		for id, pair := range defaultPumps {
			pumps[id] = pair
		}
	}
	if err != nil {
		return nil, err
	}

	if err := validatePumpMapping(pumps, hw.MasterValveLine); err != nil {
		return nil, err
	}
	return pumps, nil
}

func readPumpMapFile(path string, hw *HardwareConfig) (PumpMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}
	var file pumpMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}
	if file.MasterValve != nil {
		hw.MasterValveLine = *file.MasterValve
	}
	if len(file.Pumps) == 0 {
		return nil, fmt.Errorf("в %s не описано ни одного насоса", path)
	}
	return PumpMapping(file.Pumps), nil
}

// ParsePumpMap разбирает строку вида "1:17:27,2:22:23" (id:valve:sensor).
func ParsePumpMap(raw string) (PumpMapping, error) {
	pumps := make(PumpMapping)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("неверная запись '%s', ожидается 'id:valve:sensor'", entry)
		}
		nums := make([]int, 3)
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("неверное число '%s' в записи '%s'", p, entry)
			}
			nums[i] = n
		}
		if _, dup := pumps[nums[0]]; dup {
			return nil, fmt.Errorf("насос %d описан дважды", nums[0])
		}
		pumps[nums[0]] = models.PinPair{ValveLine: nums[1], SensorLine: nums[2]}
	}
	if len(pumps) == 0 {
		return nil, fmt.Errorf("пустая карта насосов")
	}
	return pumps, nil
}

// validatePumpMapping запрещает повторное использование одной линии.
func validatePumpMapping(pumps PumpMapping, masterLine int) error {
	owners := map[int]string{masterLine: "master valve"}
	claim := func(line int, who string) error {
		if prev, taken := owners[line]; taken {
			return fmt.Errorf("линия %d используется дважды: %s и %s", line, prev, who)
		}
		owners[line] = who
		return nil
	}
	for id, pair := range pumps {
		if err := claim(pair.ValveLine, fmt.Sprintf("pump %d valve", id)); err != nil {
			return err
		}
		if err := claim(pair.SensorLine, fmt.Sprintf("pump %d sensor", id)); err != nil {
			return err
		}
	}
	return nil
}
