// Package cleaning implements the fixed nine-stage statistical cleaning
// pipeline applied to raw sensor tables: missing-marker normalization, type
// coercion, date parsing, sparse-row removal, median imputation, sequential
// IQR outlier trimming, standardization, duplicate removal, and an optional
// derived-feature hook. Stage order and parameters are fixed; data-quality
// problems degrade to missing values and never surface as errors.
package cleaning
