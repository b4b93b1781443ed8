// Package domain models phone temperature readings and their classification.
//
// # Bands
//
// A temperature in degrees Celsius falls into exactly one of four ordered
// bands. Each lower bound is inclusive:
//
//	normal:    t < 35
//	warm:      35 <= t < 45
//	hot:       45 <= t < 55
//	dangerous: t >= 55
//
// For whole-degree input this is the familiar "34 and below / 35-44 / 45-54 /
// 55 and above" table; fractional values such as 34.5 land in the lower band
// so the partition has no gaps.
//
// # Readings
//
// A [Reading] records where a temperature came from:
//
//	manual:    typed by the user, validated by [ParseTemperature]
//	measured:  reported by the battery capability's temperature field
//	estimated: derived from charging state and charge level by [Estimate]
//
// Most platforms expose charging and level but no temperature, so the
// estimated path is the common one. The heuristic starts at 30°C, adds 8°C
// while charging and 3°C when the charge level is below 20%. Estimated
// readings carry the [Factor]s that contributed so callers can show them.
//
// # Errors
//
// Manual input that is empty or not a finite number wraps
// [ErrInvalidTemperature]. A missing battery capability is
// [ErrDetectionUnsupported]; any other probe failure wraps
// [ErrDetectionFailed]. None of them are fatal.
package domain
