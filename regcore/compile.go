package regcore

import "errors"

// Compile turns pattern source into a CompiledPattern using parser,
// consulting cache first and populating it on a miss. This is the Go
// shape of the Regex<Parser> constructor in RegexMatcher.cpp: check
// s_parser_cache, and only invoke the Parser and cache the result on a
// miss. Passing a nil cache disables caching entirely (every call
// reparses), which the original has no equivalent of but which is useful
// for one-off patterns in tests.
func Compile(parser Parser, cache *ProgramCache, source string, options Flag) (*CompiledPattern, error) {
	if cache != nil {
		if cached, ok := cache.Get(source, options); ok {
			return cached, nil
		}
	}

	program, err := parser.Parse(source, options)
	if err != nil {
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &CompileError{Source: source, Options: options, Err: syntaxErr}
		}
		return nil, err
	}

	pattern := &CompiledPattern{
		Source:                    source,
		Options:                   options,
		Program:                   program,
		MinMatchLength:            program.MinMatchLength,
		CaptureGroupCount:         program.CaptureGroupCount,
		NamedCaptureGroupCount:    program.NamedCaptureGroupCount,
		StartingRanges:            program.StartingRanges,
		StartingRangesInsensitive: program.StartingRangesInsensitive,
		OnlyStartOfLine:           program.OnlyStartOfLine,
		NamedCaptures:             program.NamedCaptures,
	}

	if cache != nil {
		cache.Insert(source, options, pattern)
	}

	return pattern, nil
}
