package service

import (
	"fmt"
	"sync"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

// ComponentRegistry holds the pluggable pieces of the pipeline: parsers by
// input format and reporters by output format.
type ComponentRegistry struct {
	mu        sync.RWMutex
	parsers   map[string]ports.ConfigParser
	reporters map[string]ports.Reporter
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		parsers:   make(map[string]ports.ConfigParser),
		reporters: make(map[string]ports.Reporter),
	}
}

func (r *ComponentRegistry) RegisterParser(parser ports.ConfigParser) error {
	if parser == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil parser")
	}
	parserType := parser.Type()
	if parserType == "" {
		return errors.New(errors.CodeInternal, "parser type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[parserType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("parser type '%s' already registered", parserType))
	}
	r.parsers[parserType] = parser
	return nil
}

func (r *ComponentRegistry) GetParser(parserType string) (ports.ConfigParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, exists := r.parsers[parserType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("parser type '%s' not found", parserType))
	}
	return parser, nil
}

func (r *ComponentRegistry) RegisterReporter(reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	reporterType := reporter.Type()
	if reporterType == "" {
		return errors.New(errors.CodeInternal, "reporter type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[reporterType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter type '%s' already registered", reporterType))
	}
	r.reporters[reporterType] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(reporterType string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[reporterType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("reporter type '%s' not found", reporterType))
	}
	return reporter, nil
}
