// SPDX-License-Identifier: MPL-2.0

// Package desktopentry decodes application launcher records (*.desktop) and
// directory metadata records (*.directory) from keyfile documents.
//
// An Entry is immutable once decoded. The Application Registry owns every Entry;
// menus hold pointers to the registry's values and never copy them.
package desktopentry
