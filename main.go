// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/xdgmenu/xdgmenu/cmd/xdgmenu"

func main() {
	cmd.Execute()
}
