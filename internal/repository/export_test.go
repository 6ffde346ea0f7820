package repository

var (
	NullableInt64  = nullableInt64
	NullableInt    = nullableInt
	NullableString = nullableString
	NullableTime   = nullableTime
	FormatTime     = formatTime
	ParseTime      = parseTime
	TimePtr        = timePtr
	IntPtr         = intPtr
	Int64Ptr       = int64Ptr
)
