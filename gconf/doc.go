/*
Package gconf provides a toolset for managing an extension configuration.

Each extension that needs configuration stores it as a singleton under the
"_c:<package name>" key. Configuration is loaded from the genesis file under
the "conf" section and can later be changed by a message signed by the
configuration owner.
*/
package gconf
