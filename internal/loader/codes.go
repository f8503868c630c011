package loader

// Code is a stable numeric failure code. Every validation, reference and
// persistence failure site carries its own code; the run summary reports
// one count per code. The numbers are part of the operational contract and
// never change meaning.
type Code int

const (
	// Reviews CSV (1-8). CodeReviewASIN also covers rows the CSV reader
	// could not parse at all, since no asin can be attributed to them.
	CodeReviewASIN     Code = 1
	CodeReviewRating   Code = 2
	CodeReviewCustomer Code = 3
	CodeReviewSummary  Code = 4
	CodeReviewContent  Code = 5
	CodeReviewProduct  Code = 6
	CodeCustomerInsert Code = 7
	CodeReviewInsert   Code = 8

	// Categories tree (9-13).
	CodeCategoryName          Code = 9
	CodeCategoryInsert        Code = 10
	CodeCategoryItemASIN      Code = 11
	CodeCategoryItemProduct   Code = 12
	CodeProductCategoryInsert Code = 13

	// Product row (14-17).
	CodeProductASIN   Code = 14
	CodeProductGroup  Code = 15
	CodeProductName   Code = 16
	CodeProductInsert Code = 17

	// Music specialization (18-23).
	CodeCdLabel       Code = 18
	CodeCdReleaseDate Code = 19
	CodeCdInsert      Code = 20
	CodeTrackInsert   Code = 21
	CodeArtistInsert  Code = 22
	CodeArtistLink    Code = 23

	// DVD specialization (24-29).
	CodeDvdFormat     Code = 24
	CodeDvdDuration   Code = 25
	CodeDvdRegionCode Code = 26
	CodeDvdInsert     Code = 27
	CodePersonInsert  Code = 28
	CodePersonLink    Code = 29

	// Book specialization (30-37).
	CodeBookISBN        Code = 30
	CodeBookPages       Code = 31
	CodeBookPublication Code = 32
	CodeBookPublisher   Code = 33
	CodePublisherInsert Code = 34
	CodeBookInsert      Code = 35
	CodeAuthorInsert    Code = 36
	CodeAuthorLink      Code = 37

	// Per-shop offer link (38-39).
	CodeOfferState  Code = 38
	CodeOfferInsert Code = 39

	// Shop/branch (40-42).
	CodeShopFields    Code = 40
	CodeAddressInsert Code = 41
	CodeShopInsert    Code = 42

	// Recommendations (43-47).
	CodeRecASIN       Code = 43
	CodeRecProduct    Code = 44
	CodeRecTargetASIN Code = 45
	CodeRecTarget     Code = 46
	CodeRecInsert     Code = 47
)
