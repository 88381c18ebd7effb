// Package console implements the numbered-menu front end of tunebox.
//
// The console reads one answer per line from an [io.Reader] and writes prompts to an [io.Writer],
// so a whole session can be scripted. Menus:
//
//	main      watch playlists, add playlist, remove playlist, exit
//	chooser   numbered playlists plus "Back to main menu" at count+1
//	playlist  show, add song, delete song, sort, play, exit
//
// Invalid menu choices print "Invalid option" and prompt again. Out-of-range song or playlist
// numbers are silent no-ops. End of input is treated as choosing exit.
//
// A fatal error from the collection stops the console; [Console.Run] returns it and the caller is
// expected to release the collection and terminate.
package console
