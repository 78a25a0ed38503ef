// Package config persists the client's operating configuration between
// invocations.
//
// Everything lives in a per-user directory, ~/.netconf_client/:
//
//   - history: command history, one entry per line, owned by the line editor
//   - config.xml: capabilities and SSH authentication settings
//   - cli.yaml: optional client settings (logging, history size, ...)
//
// Load runs once at start-up and distributes config.xml into the session's
// capability set and the authentication subsystem. Store runs once at
// shutdown, saving history and rewriting the <capabilities> section of
// config.xml in place. Elements the client does not understand survive a
// store cycle.
//
// config.xml layout:
//
//	<client-config>
//	  <capabilities>
//	    <capability>urn:ietf:params:netconf:base:1.0</capability>
//	  </capabilities>
//	  <authentication>
//	    <pref>
//	      <publickey>3</publickey>
//	      <interactive>2</interactive>
//	      <password>1</password>
//	    </pref>
//	    <keys>
//	      <key-path>/home/user/.ssh/id_rsa</key-path>
//	    </keys>
//	  </authentication>
//	</client-config>
//
// No failure in this package terminates the process. Only an unresolvable
// home directory aborts a Load or Store call; all other failures are
// logged and leave the session with usable defaults.
package config
