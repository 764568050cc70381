package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynUnexpectedEOF      Code = 2003
	SynExpectLParen       Code = 2004
	SynExpectRParen       Code = 2005
	SynExpectLBrace       Code = 2006
	SynExpectRBracket     Code = 2007
	SynExpectSemicolon    Code = 2008
	SynExpectColon        Code = 2009
	SynExpectComma        Code = 2010
	SynExpectIdentifier   Code = 2011
	SynExpectType         Code = 2012
	SynElseWithoutBody    Code = 2013
	SynCaseOutsideSwitch  Code = 2014
	SynUnexpectedInSwitch Code = 2015

	// Семантические
	SemaInfo              Code = 3000
	SemaUnknownType       Code = 3001
	SemaUndeclaredIdent   Code = 3002
	SemaNameConflict      Code = 3003
	SemaNotAMember        Code = 3004
	SemaInvalidSwizzle    Code = 3005
	SemaInvalidDotLHS     Code = 3006
	SemaNotAssignable     Code = 3007
	SemaMemberRestriction Code = 3008
	SemaTypeNotAllowed    Code = 3009
	SemaMissingSemantic   Code = 3010
	SemaInvalidSemantic   Code = 3011
	SemaMissingFormat     Code = 3012
	SemaInvalidFormat     Code = 3013
	SemaMissingTarget     Code = 3014
	SemaEntryReturnType   Code = 3015
	SemaEntryParams       Code = 3016
	SemaNoEntryPoint      Code = 3017
	SemaLocalQualifier    Code = 3018
	SemaConstQualifier    Code = 3019
	SemaArrayInit         Code = 3020
	SemaArrayLength       Code = 3021
	SemaParamAssignment   Code = 3022

	// Ресурсные: слоты биндинга
	ResInfo           Code = 3500
	ResSlotInvalid    Code = 3501
	ResSlotExceeded   Code = 3502
	ResSlotBound      Code = 3503
	ResTargetInvalid  Code = 3504
	ResTargetExceeded Code = 3505
	ResTargetBound    Code = 3506

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjNoSources       Code = 5002
	ProjUnknownTarget   Code = 5003

	// Генерация
	GenInfo                Code = 6000
	GenUnsupportedSemantic Code = 6001
	GenLayoutConflict      Code = 6002
	GenUnsupportedFormat   Code = 6003

	// Наблюдаемость
	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexTokenTooLong:             "Token too long",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnexpectedTopLevel:       "Unexpected program-level token",
		SynUnexpectedEOF:            "Unexpected end of file",
		SynExpectLParen:             "Expected '('",
		SynExpectRParen:             "Expected ')'",
		SynExpectLBrace:             "Expected '{'",
		SynExpectRBracket:           "Expected ']'",
		SynExpectSemicolon:          "Expected ';'",
		SynExpectColon:              "Expected ':'",
		SynExpectComma:              "Expected ','",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynElseWithoutBody:          "Else without body",
		SynCaseOutsideSwitch:        "Case label outside switch",
		SynUnexpectedInSwitch:       "Unexpected statement in switch",
		SemaInfo:                    "Semantic information",
		SemaUnknownType:             "Unknown type",
		SemaUndeclaredIdent:         "Undeclared identifier",
		SemaNameConflict:            "Name conflicts with existing declaration",
		SemaNotAMember:              "Not a member",
		SemaInvalidSwizzle:          "Invalid swizzle",
		SemaInvalidDotLHS:           "Invalid left-hand side for '.'",
		SemaNotAssignable:           "Expression is not assignable",
		SemaMemberRestriction:       "Member declaration not allowed",
		SemaTypeNotAllowed:          "Type not allowed here",
		SemaMissingSemantic:         "Missing semantic",
		SemaInvalidSemantic:         "Invalid semantic",
		SemaMissingFormat:           "Missing format",
		SemaInvalidFormat:           "Invalid format",
		SemaMissingTarget:           "Missing render target",
		SemaEntryReturnType:         "Stage entry must return void",
		SemaEntryParams:             "Invalid stage entry parameters",
		SemaNoEntryPoint:            "No stage entry point",
		SemaLocalQualifier:          "Qualifier not allowed on local variable",
		SemaConstQualifier:          "Const variable cannot be an output",
		SemaArrayInit:               "Arrays cannot be initialised",
		SemaArrayLength:             "Invalid array length",
		SemaParamAssignment:         "Parameters cannot have default values",
		ResInfo:                     "Resource information",
		ResSlotInvalid:              "Slot must be a constant integer",
		ResSlotExceeded:             "Slot exceeds maximum",
		ResSlotBound:                "Slot already bound",
		ResTargetInvalid:            "Render target must be a constant integer",
		ResTargetExceeded:           "Render target exceeds maximum",
		ResTargetBound:              "Render target already bound",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOCacheError:                "Cache error",
		ProjInfo:                    "Project information",
		ProjManifestInvalid:         "Invalid project manifest",
		ProjNoSources:               "No shader sources",
		ProjUnknownTarget:           "Unknown output target",
		GenInfo:                     "Generator information",
		GenUnsupportedSemantic:      "Semantic not supported by target",
		GenLayoutConflict:           "Layout declared with a different shape",
		GenUnsupportedFormat:        "Vertex format not supported by target",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 3500:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 3500 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
