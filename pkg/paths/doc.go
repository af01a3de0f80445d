// Package paths expands the destination templates of manifest entries.
//
// A template may reference environment variables as $NAME and may start
// with ~ as a shorthand for $HOME:
//
//	$XDG_CONFIG_HOME/nvim  ->  /home/u/.config/nvim
//	~/bin                  ->  /home/u/bin
//
// Expansion never touches the filesystem and never fails. References to
// unset variables are left as they are.
package paths
