// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export assembles admin statistics and data export bundles.

An Exporter reads from a UserSource and a FeedbackSource. The sources a
scope needs are fetched concurrently, and each one is isolated: an error
or panic in one source is logged, counted in export_source_failures_total
and replaced by an empty default, while every other source still appears.
Failed sources are listed in unavailable_sources.

# Bundles

Bundle is a closed set of concrete types, one per Scope:

	ScopeAll            AllDataBundle
	ScopeUsers          UserDataBundle
	ScopeCreators       CreatorDataBundle
	ScopeFeedback       FeedbackDataBundle
	ScopeNotInterested  NotInterestedDataBundle

Every bundle carries export_date, the wall-clock time of the export. The
caller's token expiry is included separately as token_expires_at.
*/
package export
