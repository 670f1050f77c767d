// Copyright 2025 ccxguard contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ccxguard

import "github.com/samber/oops"

// Error taxonomy from spec.md §7. Every error this module returns is built
// through one of the helpers below, so callers can discriminate by code
// with CodeOf rather than string-matching error text.
const (
	CodeValidation    = "VALIDATION"
	CodeNotFound      = "NOT_FOUND"
	CodeDuplicate     = "DUPLICATE"
	CodeBadArgument   = "BAD_ARGUMENT"
	CodeSerialization = "SERIALIZATION"
	CodeMigration     = "MIGRATION"
)

// ErrValidation reports a malformed policy/inquiry/rule at construction or
// load time (e.g. unknown effect, bad CIDR, uncompilable regex).
func ErrValidation(format string, args ...any) error {
	return oops.Code(CodeValidation).Errorf(format, args...)
}

// ErrNotFound reports a storage lookup by uid that found nothing.
func ErrNotFound(uid string) error {
	return oops.Code(CodeNotFound).With("uid", uid).Errorf("policy %q not found", uid)
}

// ErrDuplicate reports a storage insert of a uid that already exists.
func ErrDuplicate(uid string) error {
	return oops.Code(CodeDuplicate).With("uid", uid).Errorf("policy %q already exists", uid)
}

// ErrBadArgument reports an invalid pagination request or an unknown rule
// type name encountered while deserializing.
func ErrBadArgument(format string, args ...any) error {
	return oops.Code(CodeBadArgument).Errorf(format, args...)
}

// ErrSerialization reports a canonical-JSON document that does not conform
// to spec.md §6.
func ErrSerialization(format string, args ...any) error {
	return oops.Code(CodeSerialization).Errorf(format, args...)
}

// ErrMigration reports a failure inside a migration step.
func ErrMigration(format string, args ...any) error {
	return oops.Code(CodeMigration).Errorf(format, args...)
}

// CodeOf extracts the taxonomy code from an error built by this package's
// helpers, or "" if err was not one of them.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if oe, ok := oops.AsOops(err); ok {
		return oe.Code()
	}
	return ""
}

// IsNotFound reports whether err is (or wraps) a NOT_FOUND error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsDuplicate reports whether err is (or wraps) a DUPLICATE error.
func IsDuplicate(err error) bool { return CodeOf(err) == CodeDuplicate }

// IsValidationErr reports whether err is (or wraps) a VALIDATION error.
func IsValidationErr(err error) bool { return CodeOf(err) == CodeValidation }
