// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring computes the public score of a work from its raw,
append-only vote log.

The pipeline is: reduce the log to the live set (latest vote per user),
apply the configured aggregation policy to get the average, and report
dispersion (variance, standard deviation) over the live set's raw points.

Two policies exist:

  - WeightedGroups: voters are grouped by their weight value; each group is
    averaged, then group means are combined weighted by the group's weight.
  - TrimmedMean: a fixed number of lowest and highest points are dropped
    before averaging.

Everything here is a pure function of its inputs; fetching votes and
weights is the caller's job. Division by zero never occurs: empty inputs
and zero total weight yield 0.
*/
package scoring
