package source

// javaLang lists the java.lang types that are visible without an import.
var javaLang = map[string]bool{
	"AbstractMethodError":             true,
	"Appendable":                      true,
	"ArithmeticException":             true,
	"ArrayIndexOutOfBoundsException":  true,
	"ArrayStoreException":             true,
	"AssertionError":                  true,
	"AutoCloseable":                   true,
	"Boolean":                         true,
	"Byte":                            true,
	"CharSequence":                    true,
	"Character":                       true,
	"Class":                           true,
	"ClassCastException":              true,
	"ClassLoader":                     true,
	"ClassNotFoundException":          true,
	"CloneNotSupportedException":      true,
	"Cloneable":                       true,
	"Comparable":                      true,
	"Deprecated":                      true,
	"Double":                          true,
	"Enum":                            true,
	"Error":                           true,
	"Exception":                       true,
	"Float":                           true,
	"FunctionalInterface":             true,
	"IllegalAccessException":          true,
	"IllegalArgumentException":        true,
	"IllegalMonitorStateException":    true,
	"IllegalStateException":           true,
	"IndexOutOfBoundsException":       true,
	"InheritableThreadLocal":          true,
	"InstantiationException":          true,
	"Integer":                         true,
	"InterruptedException":            true,
	"Iterable":                        true,
	"LinkageError":                    true,
	"Long":                            true,
	"Math":                            true,
	"Module":                          true,
	"NegativeArraySizeException":      true,
	"NoClassDefFoundError":            true,
	"NoSuchFieldException":            true,
	"NoSuchMethodException":           true,
	"NullPointerException":            true,
	"Number":                          true,
	"NumberFormatException":           true,
	"Object":                          true,
	"OutOfMemoryError":                true,
	"Override":                        true,
	"Package":                         true,
	"Process":                         true,
	"ProcessBuilder":                  true,
	"Readable":                        true,
	"Record":                          true,
	"ReflectiveOperationException":    true,
	"Runnable":                        true,
	"Runtime":                         true,
	"RuntimeException":                true,
	"SafeVarargs":                     true,
	"SecurityException":               true,
	"Short":                           true,
	"StackOverflowError":              true,
	"StackTraceElement":               true,
	"StrictMath":                      true,
	"String":                          true,
	"StringBuffer":                    true,
	"StringBuilder":                   true,
	"StringIndexOutOfBoundsException": true,
	"SuppressWarnings":                true,
	"System":                          true,
	"Thread":                          true,
	"ThreadGroup":                     true,
	"ThreadLocal":                     true,
	"Throwable":                       true,
	"TypeNotPresentException":         true,
	"UnsupportedOperationException":   true,
	"VirtualMachineError":             true,
	"Void":                            true,
}

// wellKnown lists library types that on-demand imports resolve to when
// no classpath entry provides them.
var wellKnown = map[string]bool{
	"java.io.File":                  true,
	"java.io.IOException":           true,
	"java.io.InputStream":           true,
	"java.io.OutputStream":          true,
	"java.io.Reader":                true,
	"java.io.Serializable":          true,
	"java.io.Writer":                true,
	"java.nio.file.Files":           true,
	"java.nio.file.Path":            true,
	"java.nio.file.Paths":           true,
	"java.util.ArrayList":           true,
	"java.util.Arrays":              true,
	"java.util.Collection":          true,
	"java.util.Collections":         true,
	"java.util.Date":                true,
	"java.util.HashMap":             true,
	"java.util.HashSet":             true,
	"java.util.Iterator":            true,
	"java.util.LinkedHashMap":       true,
	"java.util.LinkedList":          true,
	"java.util.List":                true,
	"java.util.Map":                 true,
	"java.util.Objects":             true,
	"java.util.Optional":            true,
	"java.util.Properties":          true,
	"java.util.Scanner":             true,
	"java.util.Set":                 true,
	"java.util.TreeMap":             true,
	"java.util.TreeSet":             true,
	"java.util.UUID":                true,
	"java.util.function.BiFunction": true,
	"java.util.function.Consumer":   true,
	"java.util.function.Function":   true,
	"java.util.function.Predicate":  true,
	"java.util.function.Supplier":   true,
	"java.util.stream.Collectors":   true,
	"java.util.stream.Stream":       true,
}
