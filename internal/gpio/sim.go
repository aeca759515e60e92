package gpio

import (
	"fmt"
	"sync"
	"time"
)

// WriteRecord - запись в журнал команд симулятора.
type WriteRecord struct {
	Line  int
	Level Level
	At    time.Time
}

type simFlow struct {
	valveLine  int
	halfPeriod time.Duration
	open       bool
	openedAt   time.Time
}

// Sim - симулятор стенда. Датчик, привязанный к клапану через AttachFlow,
// выдает меандр, пока клапан открыт (низкий уровень на линии клапана).
type Sim struct {
	mu       sync.Mutex
	levels   map[int]Level
	flows    map[int]*simFlow
	readErr  map[int]error
	writeErr map[int]error
	history  []WriteRecord
	now      func() time.Time
}

func NewSim() *Sim {
	return &Sim{
		levels:   make(map[int]Level),
		flows:    make(map[int]*simFlow),
		readErr:  make(map[int]error),
		writeErr: make(map[int]error),
		now:      time.Now,
	}
}

func (s *Sim) Name() string { return "sim" }

// AttachFlow связывает датчик с клапаном: при открытом клапане датчик дает
// один импульс (спад high -> low) за каждый pulsePeriod.
func (s *Sim) AttachFlow(sensorLine, valveLine int, pulsePeriod time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := &simFlow{valveLine: valveLine, halfPeriod: pulsePeriod / 2}
	if lvl, ok := s.levels[valveLine]; ok && lvl == Low {
		flow.open = true
		flow.openedAt = s.now()
	}
	s.flows[sensorLine] = flow
}

// FailRead заставляет чтение линии возвращать ошибку (nil снимает сбой).
func (s *Sim) FailRead(line int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.readErr, line)
		return
	}
	s.readErr[line] = err
}

// FailWrite заставляет запись в линию возвращать ошибку (nil снимает сбой).
func (s *Sim) FailWrite(line int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.writeErr, line)
		return
	}
	s.writeErr[line] = err
}

// SetInput задает уровень входа без привязанного потока.
func (s *Sim) SetInput(line int, level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[line] = level
}

func (s *Sim) SetupOutput(line int, initial Level) error {
	return s.Write(line, initial)
}

func (s *Sim) SetupInput(line int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.levels[line]; !ok {
		s.levels[line] = High
	}
	return nil
}

func (s *Sim) Write(line int, level Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErr[line]; err != nil {
		return fmt.Errorf("sim write line %d: %w", line, err)
	}

	now := s.now()
	s.levels[line] = level
	s.history = append(s.history, WriteRecord{Line: line, Level: level, At: now})

	for _, flow := range s.flows {
		if flow.valveLine != line {
			continue
		}
		switch {
		case level == Low && !flow.open:
			flow.open = true
			flow.openedAt = now
		case level == High:
			flow.open = false
		}
	}
	return nil
}

func (s *Sim) Read(line int) (Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readErr[line]; err != nil {
		return Low, fmt.Errorf("sim read line %d: %w", line, err)
	}

	if flow, ok := s.flows[line]; ok {
		if !flow.open || flow.halfPeriod <= 0 {
			return High, nil
		}
		phase := s.now().Sub(flow.openedAt) / flow.halfPeriod
		return Level(phase%2 == 0), nil
	}

	if lvl, ok := s.levels[line]; ok {
		return lvl, nil
	}
	return High, nil
}

func (s *Sim) Close() error { return nil }

// Level возвращает последний выставленный уровень линии.
func (s *Sim) Level(line int) (Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lvl, ok := s.levels[line]
	return lvl, ok
}

// Writes возвращает копию журнала записей.
func (s *Sim) Writes() []WriteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]WriteRecord, len(s.history))
	copy(out, s.history)
	return out
}

// WritesFor возвращает журнал записей одной линии.
func (s *Sim) WritesFor(line int) []WriteRecord {
	var out []WriteRecord
	for _, w := range s.Writes() {
		if w.Line == line {
			out = append(out, w)
		}
	}
	return out
}
