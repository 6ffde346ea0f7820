package handler

// Export for testing
type FeedResponse = feedResponse
type FeedConflictResponse = feedConflictResponse
type FeedPreviewResponse = feedPreviewResponse
type FeedStatsResponse = feedStatsResponse
type FetchOutcomeResponse = fetchOutcomeResponse
type RunStartedResponse = runStartedResponse
type JobResponse = jobResponse
type ArticleResponse = articleResponse
type ArticleStatsResponse = articleStatsResponse
type ReadableContentResponse = readableContentResponse
type ImportResultResponse = importResultResponse
type LoginResponse = loginResponse
type AuthStatusResponse = authStatusResponse
type HealthResponse = healthResponse

var WriteServiceError = writeServiceError
var SplitList = splitList
