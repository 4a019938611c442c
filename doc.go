// Package taxreport turns a broker equity-compensation export (RSU and ESPP sales)
// into a tax-oriented report grouped by year and plan type.
//
// The pipeline has four stages:
//   - Normalization: raw CSV rows become [TradeRecord] values, with locale tolerant
//     number parsing and sell-to-cover detection.
//   - Computation: a [Calculator] derives per share and per order figures according to
//     the plan type, and optionally converts the realized gain into the reporting
//     currency through a [RateCache].
//   - Grouping: [Render] groups line items by (year, plan type) in first-seen order and
//     adds a totals row to each group.
//   - Formatting: each [Table] renders itself as markdown, numbers are formatted with an
//     explicit [NumberFormat].
//
// This package serves as the foundational logic for the `taxreport` command-line tool.
package taxreport
