package intel

import (
	"reflect"
	"testing"
)

func TestExtractCategories(t *testing.T) {
	e := Default()

	testCases := []struct {
		name     string
		text     string
		category Category
		want     []string
	}{
		{
			name:     "upi id",
			text:     "send money to rakesh.sharma46@oksbi today",
			category: CategoryUPI,
			want:     []string{"rakesh.sharma46@oksbi"},
		},
		{
			name:     "http and https urls",
			text:     "click http://bit.ly/fake or https://secure-verify.example/kyc",
			category: CategoryURL,
			want:     []string{"http://bit.ly/fake", "https://secure-verify.example/kyc"},
		},
		{
			name:     "account number 12 digits",
			text:     "transfer to account 502134789012 before 5pm",
			category: CategoryBankAccount,
			want:     []string{"502134789012"},
		},
		{
			name:     "too short for account number",
			text:     "code 12345678",
			category: CategoryBankAccount,
			want:     []string{},
		},
		{
			name:     "ifsc code",
			text:     "branch IFSC is SBIN0004578",
			category: CategoryIFSC,
			want:     []string{"SBIN0004578"},
		},
		{
			name:     "lowercase is not an ifsc code",
			text:     "sbin0004578",
			category: CategoryIFSC,
			want:     []string{},
		},
		{
			name:     "bare mobile number",
			text:     "send OTP to 9876543210 now",
			category: CategoryPhone,
			want:     []string{"9876543210"},
		},
		{
			name:     "mobile with country prefix",
			text:     "call +919876543210 immediately",
			category: CategoryPhone,
			want:     []string{"+919876543210"},
		},
		{
			name:     "account number is not a phone number",
			text:     "account 502134789012",
			category: CategoryPhone,
			want:     []string{},
		},
		{
			name:     "adjacent numbers split by one separator",
			text:     "numbers: 9876543210,9123456780",
			category: CategoryPhone,
			want:     []string{"9876543210", "9123456780"},
		},
		{
			name:     "numbers split by a wider separator",
			text:     "9876543210 or 9123456780",
			category: CategoryPhone,
			want:     []string{"9876543210", "9123456780"},
		},
		{
			name:     "scam keywords",
			text:     "URGENT: your account blocked, claim refund",
			category: CategoryKeyword,
			want:     []string{"urgent", "refund", "account blocked"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.text)[tc.category]
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Extract(%q)[%s] = %v, want %v", tc.text, tc.category, got, tc.want)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	e := Default()
	text := "Your account will be blocked, send OTP to 9876543210 now, click http://bit.ly/fake"

	first := e.Extract(text)
	second := e.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two extractions differ:\n%v\n%v", first, second)
	}
}

func TestExtractReturnsFullSchema(t *testing.T) {
	got := Default().Extract("hello there")

	for _, cat := range Categories() {
		set, ok := got[cat]
		if !ok || set == nil {
			t.Errorf("category %s missing or nil for non-matching text", cat)
		}
	}
}

func TestExtractIndependentCategoriesInOneMessage(t *testing.T) {
	// One message carrying both an account number and a routing code must
	// populate both categories independently.
	got := Default().Extract("use A/C 502134789012 with SBIN0004578")

	if !got.Has(CategoryBankAccount, "502134789012") {
		t.Errorf("bank account not extracted: %v", got[CategoryBankAccount])
	}
	if !got.Has(CategoryIFSC, "SBIN0004578") {
		t.Errorf("ifsc not extracted: %v", got[CategoryIFSC])
	}
}

func TestExtractNormalizesFullwidthDigits(t *testing.T) {
	// NFKC folds fullwidth digits, so obfuscated numbers still match.
	got := Default().Extract("OTP to ９876543210")

	if !got.Has(CategoryPhone, "9876543210") {
		t.Errorf("fullwidth digit defeated extraction: %v", got[CategoryPhone])
	}
}

func TestExtractCustomPhonePattern(t *testing.T) {
	e := NewExtractor(ExtractorConfig{
		// US-style ten digits with separators.
		PhonePattern: `(?:^|[^0-9])(\(?[0-9]{3}\)?[-. ][0-9]{3}[-. ][0-9]{4})`,
	})

	got := e.Extract("call 415-555-0187 today")
	if !got.Has(CategoryPhone, "415-555-0187") {
		t.Errorf("custom pattern not applied: %v", got[CategoryPhone])
	}
}

func TestExtractEmptyText(t *testing.T) {
	got := Default().Extract("")
	if !got.IsEmpty() {
		t.Errorf("empty text produced values: %v", got)
	}
}
