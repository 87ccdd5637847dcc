package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AnswerTolerance absorbs floating rounding in numeric comparisons. It is a
// fixed design choice, not configuration.
const AnswerTolerance = 1e-4

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	currencyRe    = regexp.MustCompile(`[£$%,]`)
	mixedNumberRe = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)$`)
	fractionRe    = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

// NormalizeAnswer canonicalizes an answer string for comparison: trimmed,
// lowercased, runs of whitespace collapsed to single spaces. Idempotent.
func NormalizeAnswer(answer string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(answer)), " ")
}

// AnswerMatches decides whether a student answer counts as correct against
// the reference answer. In order, first success wins:
//
//  1. exact equality after normalization
//  2. fraction comparison when the reference contains "/" (handles mixed
//     numbers and decimals on either side)
//  3. numeric comparison after stripping currency/percent/thousands symbols
//
// Unparseable input never fails the call; it just falls through to the next
// stage and ultimately to "not correct".
func AnswerMatches(studentAnswer, correctAnswer string) bool {
	student := NormalizeAnswer(studentAnswer)
	correct := NormalizeAnswer(correctAnswer)

	if student == correct {
		return true
	}

	if strings.Contains(correctAnswer, "/") {
		sv, sok := parseFraction(student)
		cv, cok := parseFraction(correct)
		if sok && cok {
			return math.Abs(sv-cv) < AnswerTolerance
		}
	}

	sv, serr := strconv.ParseFloat(currencyRe.ReplaceAllString(student, ""), 64)
	cv, cerr := strconv.ParseFloat(currencyRe.ReplaceAllString(correct, ""), 64)
	if serr == nil && cerr == nil {
		return math.Abs(sv-cv) < AnswerTolerance
	}

	return false
}

// parseFraction reads "whole num/den", "num/den" or a plain decimal.
func parseFraction(s string) (float64, bool) {
	if m := mixedNumberRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.Atoi(m[1])
		num, _ := strconv.Atoi(m[2])
		den, _ := strconv.Atoi(m[3])
		if den != 0 {
			return float64(whole) + float64(num)/float64(den), true
		}
		return 0, false
	}

	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.Atoi(m[1])
		den, _ := strconv.Atoi(m[2])
		if den != 0 {
			return float64(num) / float64(den), true
		}
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
