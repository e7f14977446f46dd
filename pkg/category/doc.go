// Package category classifies people in the genealogy into lineage
// categories used for node colouring and the legend.
//
// Classification is by exact name against fixed membership lists. Lists
// overlap (David and Jesus are both Patriarchs and Royal Line; Eleazar is
// both Royal and Priestly), so [Classify] checks them in a fixed order and
// the first hit wins:
//
//  1. [Patriarch]
//  2. [Tribe], only when the parent is "Jacob (Israel)"
//  3. [Royal]
//  4. [Priestly]
//  5. [Unclassified]
//
// The full precedence table lives in testdata/precedence.md and is checked by
// the package tests.
package category
