// Package events decodes page events encoded as JSON lines and replays them
// into a running session.
//
// Each line is one object with a "type" field:
//
//	{"type":"vital","name":"LCP","value":1820.5,"id":"v4-1","delta":1820.5,"rating":"good","navigationType":"navigate"}
//	{"type":"error","message":"Uncaught TypeError: x is undefined","error":{"name":"TypeError","message":"x is undefined","stack":"..."}}
//	{"type":"navigate","href":"https://shop.example.com/checkout"}
//	{"type":"interaction","event":"click","target":"BUTTON","xpath":"//*[@id=\"buy\"]"}
//	{"type":"longtask","duration":120}
//
// The "error" value of an error event may be an object, a string or any
// other JSON value. Objects become *errreport.Exception, strings stay
// strings and everything else is passed through as decoded.
package events
