// Package domain models the hydro-economic crop advisory core: administrative
// blocks and their groundwater classification, the crop catalog, water-stress
// yield adjustment, per-crop economics, and the recommendation ranker.
//
// # Administrative units
//
// The smallest unit carrying a groundwater classification is the block
// (sub-district/taluka). Blocks are keyed by postal pincode and also carry
// WGS-84 coordinates for nearest-neighbor resolution when a pincode is
// unknown. Classifications follow the Central Ground Water Board (CGWB)
// tiering:
//
//	Safe → Semi-critical → Critical → Over-exploited
//
// Unknown is used when a point cannot be resolved to a classified block.
//
// # Water availability
//
// Two water models coexist on purpose:
//
//   - The balance estimator (internal/balance) fuses block status, satellite
//     storage anomaly, rainfall, and soil moisture into a point-in-time net
//     balance in millimetres. It drives the groundwater assessment shown to
//     the farmer.
//   - SeasonalAvailableWaterMM in this package is a deliberately simpler proxy used
//     inside the recommendation pipeline: a soil-texture water bucket plus a
//     fixed assumed seasonal rainfall. It only feeds the yield-stress curves.
//
// # Stress curves
//
// Yield response to water shortage is a calibration table per crop category
// (Cereal, Cash Crop, Pulse, Vegetable, Horticulture): a multiplier at each
// availability decile from 30% to 100%, linearly interpolated in between.
// Below 30% availability every category collapses to a 0.05 multiplier
// (near-total crop failure). These are calibration defaults, not measured
// response functions.
//
// # Profit index
//
// Crops with very different durations and water footprints are compared via
//
//	profitIndex = (netProfit / waterMM) × (365 / durationDays)
//
// i.e. net profit per millimetre of water, annualized. A 90-day pulse and a
// 365-day cane crop land on the same scale.
//
// # Smart swap
//
// When the farmer states an intent crop, every other candidate is checked
// for dominance: saving more than 20% of the intent's water while keeping at
// least 80% of its profit index (or cutting risk by more than 20 points)
// flags the candidate as a smart swap. The ranker never silently puts a
// different crop on top: an unflagged champion is promoted with an explicit
// reason (see PromoteChampion).
package domain
